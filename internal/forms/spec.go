package forms

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/yukikurage/homebase/internal/models"
)

// Spec describes a form for the client to render. A new Spec is built for
// every request.
type Spec struct {
	Title   string                 `json:"form_title"`
	Submit  string                 `json:"submit"`
	Fields  []Field                `json:"fields"`
	Initial map[string]interface{} `json:"initial,omitempty"`
}

type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Choices  []Choice `json:"choices,omitempty"`
}

type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

const submitSave = "저장"

func text(name, label string) Field { return Field{Name: name, Label: label, Type: "text", Required: true} }
func textarea(name, label string) Field { return Field{Name: name, Label: label, Type: "textarea", Required: true} }
func password(name, label string) Field { return Field{Name: name, Label: label, Type: "password", Required: true} }

func SignupSpec() Spec {
	return Spec{
		Title:  "회원가입",
		Submit: "회원가입",
		Fields: []Field{
			text("username", "사용자 이름"),
			{Name: "email", Label: "이메일", Type: "email", Required: true},
			text("nick_name", "닉네임"),
			password("password1", "비밀번호"),
			password("password2", "비밀번호 확인"),
		},
	}
}

func LoginSpec() Spec {
	return Spec{
		Title:  "로그인",
		Submit: "로그인",
		Fields: []Field{text("username", "사용자 이름"), password("password", "비밀번호")},
	}
}

func AvatarSpec() Spec {
	return Spec{
		Title:  "프로필 사진 수정",
		Submit: submitSave,
		Fields: []Field{{Name: "avatar", Label: "프로필 사진", Type: "file"}},
	}
}

func NicknameSpec(user *models.User) Spec {
	return Spec{
		Title:   "닉네임 수정",
		Submit:  submitSave,
		Fields:  []Field{text("nick_name", "닉네임")},
		Initial: map[string]interface{}{"nick_name": user.Nickname},
	}
}

func PasswordChangeSpec() Spec {
	return Spec{
		Title:  "비밀번호 변경",
		Submit: "비밀번호 변경하기",
		Fields: []Field{
			password("old_password", "기존 비밀번호"),
			password("new_password1", "새 비밀번호"),
			password("new_password2", "새 비밀번호 확인"),
		},
	}
}

// PostSpec builds the post form. post is nil for a new post.
func PostSpec(post *models.Post, categories []models.Category, tags []models.Tag) Spec {
	categoryChoices := make([]Choice, 0, len(categories))
	for _, c := range categories {
		categoryChoices = append(categoryChoices, Choice{Value: strconv.FormatUint(c.ID, 10), Label: c.Name})
	}
	tagChoices := make([]Choice, 0, len(tags))
	for _, t := range tags {
		tagChoices = append(tagChoices, Choice{Value: strconv.FormatUint(t.ID, 10), Label: t.Name})
	}

	spec := Spec{
		Title:  "새 블로그",
		Submit: submitSave,
		Fields: []Field{
			{Name: "category", Label: "카테고리", Type: "select", Required: true, Choices: categoryChoices},
			text("title", "제목"),
			textarea("content", "내용"),
			{Name: "tags", Label: "태그", Type: "multiselect", Choices: tagChoices},
			{Name: "thumbnail", Label: "썸네일", Type: "file"},
		},
	}
	if post != nil {
		tagIDs := make([]uint64, 0, len(post.Tags))
		for _, t := range post.Tags {
			tagIDs = append(tagIDs, t.ID)
		}
		spec.Title = "블로그 수정"
		spec.Initial = map[string]interface{}{
			"category":  post.CategoryID,
			"title":     post.Title,
			"content":   post.Content,
			"tags":      tagIDs,
			"thumbnail": post.ThumbnailURL,
		}
	}
	return spec
}

func CommentSpec(comment *models.Comment) Spec {
	spec := Spec{Title: "새 댓글", Submit: submitSave, Fields: []Field{textarea("content", "내용")}}
	if comment != nil {
		spec.Title = "댓글 수정"
		spec.Initial = map[string]interface{}{"content": comment.Content}
	}
	return spec
}

func ReplySpec(reply *models.Reply) Spec {
	spec := Spec{Title: "새 대댓글", Submit: submitSave, Fields: []Field{textarea("content", "내용")}}
	if reply != nil {
		spec.Title = "대댓글 수정"
		spec.Initial = map[string]interface{}{"content": reply.Content}
	}
	return spec
}

func MemoSpec(memo *models.Memo) Spec {
	spec := Spec{
		Title:  "새 메모",
		Submit: submitSave,
		Fields: []Field{
			text("title", "제목"),
			textarea("content", "내용"),
			{Name: "status", Label: "진행중", Type: "checkbox"},
			{Name: "due_date", Label: "마감일", Type: "date"},
		},
		Initial: map[string]interface{}{"status": true},
	}
	if memo != nil {
		spec.Title = "메모 수정"
		spec.Initial = map[string]interface{}{
			"title":   memo.Title,
			"content": memo.Content,
			"status":  memo.Status,
		}
		if memo.DueDate != nil {
			spec.Initial["due_date"] = memo.DueDate.Format(DateLayout)
		}
	}
	return spec
}

// EventColorChoices lists the selectable colors in a stable order.
func EventColorChoices() []Choice {
	choices := make([]Choice, 0, len(models.EventColorLabels))
	for color, label := range models.EventColorLabels {
		choices = append(choices, Choice{Value: string(color), Label: label})
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].Value < choices[j].Value })
	return choices
}

func EventSpec(event *models.Event) Spec {
	spec := Spec{
		Title:  "새 일정",
		Submit: submitSave,
		Fields: []Field{
			text("title", "제목"),
			textarea("content", "내용"),
			{Name: "event_color", Label: "색상", Type: "select", Choices: EventColorChoices()},
			{Name: "start_time", Label: "시작 시간", Type: "datetime-local", Required: true},
			{Name: "end_time", Label: "종료 시간", Type: "datetime-local", Required: true},
		},
		Initial: map[string]interface{}{"event_color": string(models.EventColorPrimary)},
	}
	if event != nil {
		spec.Title = "일정 수정"
		spec.Initial = map[string]interface{}{
			"title":       event.Title,
			"content":     event.Content,
			"event_color": string(event.Color),
			"start_time":  event.StartTime.Format(DateTimeLayout),
			"end_time":    event.EndTime.Format(DateTimeLayout),
		}
	}
	return spec
}

func teamChoices(rows []models.TeamStanding) []Choice {
	choices := make([]Choice, 0, len(rows))
	for _, row := range rows {
		choices = append(choices, Choice{Value: strconv.FormatUint(row.ID, 10), Label: row.TeamName})
	}
	return choices
}

// PlayerSpec builds the player form. teams maps a league id to its rows.
func PlayerSpec(player *models.Player, teams map[int][]models.TeamStanding) Spec {
	fields := []Field{text("name", "이름")}
	for _, l := range []struct {
		league int
		prefix string
		label  string
	}{
		{models.LeaguePremierLeague, "pl", "프리미어리그"},
		{models.LeagueLaLiga, "ll", "라리가"},
		{models.LeagueBundesLiga, "bl", "분데스리가"},
		{models.LeagueSerieA, "sa", "세리에A"},
	} {
		fields = append(fields,
			Field{Name: l.prefix + "_team", Label: l.label + " 팀", Type: "select", Required: true, Choices: teamChoices(teams[l.league])},
			text(l.prefix+"_pot", fmt.Sprintf("%s 포트", l.label)),
		)
	}
	fields = append(fields, Field{Name: "cup_point", Label: "컵 포인트", Type: "number", Required: true})

	spec := Spec{
		Title:   "새 참가자",
		Submit:  submitSave,
		Fields:  fields,
		Initial: map[string]interface{}{"cup_point": 0},
	}
	if player != nil {
		spec.Title = "플레이어 정보 수정"
		spec.Initial = map[string]interface{}{
			"name":      player.Name,
			"pl_team":   player.PLTeamID,
			"pl_pot":    player.PLPot,
			"ll_team":   player.LLTeamID,
			"ll_pot":    player.LLPot,
			"bl_team":   player.BLTeamID,
			"bl_pot":    player.BLPot,
			"sa_team":   player.SATeamID,
			"sa_pot":    player.SAPot,
			"cup_point": player.CupPoint,
		}
	}
	return spec
}
