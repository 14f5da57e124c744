package handlers

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/homebase/internal/constants"
	"github.com/yukikurage/homebase/internal/dto"
	apierrors "github.com/yukikurage/homebase/internal/errors"
	"github.com/yukikurage/homebase/internal/models"
	"github.com/yukikurage/homebase/internal/services"
)

type BlogHandlerTestSuite struct {
	suite.Suite
	env      *testEnv
	author   *models.User
	other    *models.User
	category *models.Category
}

func (s *BlogHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())
	s.author = s.env.createUser(s.T(), "author", false, false)
	s.other = s.env.createUser(s.T(), "other", false, false)

	category, err := s.env.blog.CreateCategory("일상", "daily")
	s.Require().NoError(err)
	s.category = category
}

func (s *BlogHandlerTestSuite) createPost(title string) *models.Post {
	post, err := s.env.blog.CreatePost(context.Background(), s.author.ID, services.PostInput{
		Title:      title,
		Content:    "본문",
		CategoryID: s.category.ID,
	})
	s.Require().NoError(err)
	return post
}

func (s *BlogHandlerTestSuite) TestCreatePost() {
	c := s.env.client(s.T())
	c.login("author")

	w := c.post("/blog/post", url.Values{
		"category": {fmt.Sprint(s.category.ID)},
		"title":    {"첫 글"},
		"content":  {"안녕하세요"},
	})
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())
	s.Equal("/blog/1", w.Header().Get("Location"))
	s.Equal([]string{"새 블로그가 포스팅 되었습니다."}, messages(c.notices()))

	w = c.get("/blog/1")
	s.Require().Equal(http.StatusOK, w.Code)
	var detail dto.PostDetailDTO
	decode(s.T(), w, &detail)
	s.Equal("첫 글", detail.Title)
	s.Equal("안녕하세요", detail.Content)
	s.Require().NotNil(detail.Author)
	s.Equal("author", detail.Author.Username)
}

func (s *BlogHandlerTestSuite) TestCreatePostValidation() {
	c := s.env.client(s.T())
	c.login("author")

	w := c.post("/blog/post", url.Values{"title": {"제목만"}})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BlogHandlerTestSuite) postValues() url.Values {
	return url.Values{
		"category": {fmt.Sprint(s.category.ID)},
		"title":    {"썸네일 글"},
		"content":  {"본문"},
	}
}

func (s *BlogHandlerTestSuite) TestCreatePostWithThumbnail() {
	c := s.env.client(s.T())
	c.login("author")

	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 9))))

	w := c.upload("/blog/post", s.postValues(), "thumbnail", "cover.png", buf.Bytes())
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())

	w = c.get(w.Header().Get("Location"))
	s.Require().Equal(http.StatusOK, w.Code)
	var detail dto.PostDetailDTO
	decode(s.T(), w, &detail)
	s.True(strings.HasPrefix(detail.ThumbnailURL, "/media/blog/post/"), detail.ThumbnailURL)
	s.True(strings.HasSuffix(detail.ThumbnailURL, ".png"), detail.ThumbnailURL)
}

func (s *BlogHandlerTestSuite) TestCreatePostRejectsMarkupThumbnail() {
	c := s.env.client(s.T())
	c.login("author")

	for _, name := range []string{"evil.html", "evil.png"} {
		w := c.upload("/blog/post", s.postValues(), "thumbnail", name, []byte("<script>alert(1)</script>"))
		s.Require().Equal(http.StatusBadRequest, w.Code, name)

		var resp struct {
			Details map[string][]string `json:"details"`
		}
		decode(s.T(), w, &resp)
		s.Equal([]string{services.MsgInvalidImage}, resp.Details["thumbnail"])
	}

	var count int64
	s.Require().NoError(s.env.db.Model(&models.Post{}).Count(&count).Error)
	s.Zero(count)
}

func (s *BlogHandlerTestSuite) TestCreatePostRejectsOversizedBody() {
	c := s.env.client(s.T())
	c.login("author")

	w := c.upload("/blog/post", s.postValues(), "thumbnail", "big.png", make([]byte, constants.MaxUploadBytes+1))
	s.Require().Equal(http.StatusRequestEntityTooLarge, w.Code)

	var resp struct {
		Code string `json:"code"`
	}
	decode(s.T(), w, &resp)
	s.Equal(apierrors.ErrCodePayloadTooLarge, resp.Code)
}

func (s *BlogHandlerTestSuite) TestIndexAndCategory() {
	s.createPost("하나")
	s.createPost("둘")

	c := s.env.client(s.T())
	w := c.get("/blog")
	s.Require().Equal(http.StatusOK, w.Code)
	var list dto.PostListResponse
	decode(s.T(), w, &list)
	s.Len(list.Posts, 2)
	s.Equal(int64(2), list.TotalPosts)
	s.Equal("둘", list.Posts[0].Title)

	w = c.get("/blog/category/" + url.PathEscape("일상"))
	s.Equal(http.StatusOK, w.Code)

	w = c.get("/blog/category/nothing")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *BlogHandlerTestSuite) TestDetailNotFound() {
	c := s.env.client(s.T())
	s.Equal(http.StatusNotFound, c.get("/blog/99").Code)
	s.Equal(http.StatusNotFound, c.get("/blog/abc").Code)
}

func (s *BlogHandlerTestSuite) TestEditByNonOwnerRedirects() {
	post := s.createPost("원본")
	c := s.env.client(s.T())
	c.login("other")

	w := c.get(fmt.Sprintf("/blog/%d/edit", post.ID))
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))
	s.Equal([]string{"수정권한이 없습니다."}, messages(c.notices()))

	w = c.post(fmt.Sprintf("/blog/%d/edit", post.ID), url.Values{
		"category": {fmt.Sprint(s.category.ID)},
		"title":    {"바꿈"},
		"content":  {"바꿈"},
	})
	s.Require().Equal(http.StatusSeeOther, w.Code)

	stored, err := s.env.blog.GetPost(post.ID)
	s.Require().NoError(err)
	s.Equal("원본", stored.Title)
}

func (s *BlogHandlerTestSuite) TestUpdatePost() {
	post := s.createPost("원본")
	c := s.env.client(s.T())
	c.login("author")

	w := c.get(fmt.Sprintf("/blog/%d/edit", post.ID))
	s.Require().Equal(http.StatusOK, w.Code)

	w = c.post(fmt.Sprintf("/blog/%d/edit", post.ID), url.Values{
		"category": {fmt.Sprint(s.category.ID)},
		"title":    {"수정본"},
		"content":  {"새 본문"},
	})
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))

	stored, err := s.env.blog.GetPost(post.ID)
	s.Require().NoError(err)
	s.Equal("수정본", stored.Title)
}

func (s *BlogHandlerTestSuite) TestDeletePost() {
	post := s.createPost("지울 글")
	path := fmt.Sprintf("/blog/%d/delete", post.ID)

	other := s.env.client(s.T())
	other.login("other")
	w := other.post(path, nil)
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))
	s.Equal([]string{"삭제권한이 없습니다."}, messages(other.notices()))

	_, err := s.env.blog.GetPost(post.ID)
	s.Require().NoError(err)

	owner := s.env.client(s.T())
	owner.login("author")
	w = owner.post(path, nil)
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal("/blog", w.Header().Get("Location"))
	s.Equal([]string{"블로그가 삭제 되었습니다."}, messages(owner.notices()))

	_, err = s.env.blog.GetPost(post.ID)
	s.ErrorIs(err, services.ErrPostNotFound)
}

func (s *BlogHandlerTestSuite) TestLikePostToggles() {
	post := s.createPost("좋아요")
	c := s.env.client(s.T())
	c.login("other")
	path := fmt.Sprintf("/blog/%d/like", post.ID)

	w := c.post(path, nil)
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))

	detail, err := s.env.blog.GetPostDetail(post.ID, s.other.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), detail.LikeCount)
	s.True(detail.Liked)

	c.post(path, nil)
	detail, err = s.env.blog.GetPostDetail(post.ID, s.other.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), detail.LikeCount)
	s.False(detail.Liked)
}

func (s *BlogHandlerTestSuite) TestLikeRequiresLogin() {
	post := s.createPost("좋아요")
	c := s.env.client(s.T())

	w := c.post(fmt.Sprintf("/blog/%d/like", post.ID), nil)
	s.Equal(http.StatusFound, w.Code)
	s.Contains(w.Header().Get("Location"), "/accounts/login?next=")
}

func (s *BlogHandlerTestSuite) TestCommentAndReplyFlow() {
	post := s.createPost("토론")
	c := s.env.client(s.T())
	c.login("other")

	w := c.post(fmt.Sprintf("/blog/%d/comment/new", post.ID), url.Values{"content": {"첫 댓글"}})
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())
	s.Equal(fmt.Sprintf("/blog/%d#end", post.ID), w.Header().Get("Location"))

	detail, err := s.env.blog.GetPostDetail(post.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(detail.Post.Comments, 1)
	comment := detail.Post.Comments[0]

	w = c.post(fmt.Sprintf("/blog/%d/reply/new", comment.ID), url.Values{"content": {"대댓글"}})
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d#comment%d", post.ID, comment.ID), w.Header().Get("Location"))

	detail, err = s.env.blog.GetPostDetail(post.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(detail.Post.Comments[0].Replies, 1)
	reply := detail.Post.Comments[0].Replies[0]

	w = c.post(fmt.Sprintf("/blog/%d/reply/edit", reply.ID), url.Values{"content": {"고친 대댓글"}})
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d#reply%d", post.ID, reply.ID), w.Header().Get("Location"))

	w = c.post(fmt.Sprintf("/blog/%d/comment/like", comment.ID), nil)
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d#comment%d", post.ID, comment.ID), w.Header().Get("Location"))

	w = c.post(fmt.Sprintf("/blog/%d/comment/delete", comment.ID), nil)
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))

	_, err = s.env.blog.GetComment(comment.ID)
	s.ErrorIs(err, services.ErrCommentNotFound)
}

func (s *BlogHandlerTestSuite) TestEditCommentByNonOwner() {
	post := s.createPost("토론")
	comment, err := s.env.blog.CreateComment(post, s.author.ID, "작성자 댓글")
	s.Require().NoError(err)

	c := s.env.client(s.T())
	c.login("other")
	w := c.post(fmt.Sprintf("/blog/%d/comment/edit", comment.ID), url.Values{"content": {"가로채기"}})
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal(fmt.Sprintf("/blog/%d", post.ID), w.Header().Get("Location"))
	s.Equal([]string{"수정권한이 없습니다."}, messages(c.notices()))
}

func (s *BlogHandlerTestSuite) TestCreateCategoryRequiresSuperuser() {
	c := s.env.client(s.T())
	c.login("author")

	w := c.post("/blog/categories", url.Values{"category_name": {"여행"}}, "Referer", "/blog")
	s.Require().Equal(http.StatusSeeOther, w.Code)
	s.Equal("/blog", w.Header().Get("Location"))

	s.env.createUser(s.T(), "admin", true, true)
	admin := s.env.client(s.T())
	admin.login("admin")

	w = admin.post("/blog/categories", url.Values{"category_name": {"여행"}, "category_slug": {"travel"}})
	s.Require().Equal(http.StatusSeeOther, w.Code, w.Body.String())
	s.Equal("/blog/category/"+url.PathEscape("여행"), w.Header().Get("Location"))

	w = admin.post("/blog/categories", url.Values{"category_name": {"여행"}})
	s.Equal(http.StatusConflict, w.Code)
}

func TestBlogHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BlogHandlerTestSuite))
}

func TestProfileListings(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "writer", false, false)
	category, err := env.blog.CreateCategory("일상", "")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := env.blog.CreatePost(context.Background(), author.ID, services.PostInput{
			Title:      fmt.Sprintf("글 %d", i),
			Content:    "본문",
			CategoryID: category.ID,
		})
		require.NoError(t, err)
	}

	c := env.client(t)
	c.login("writer")

	w := c.get("/accounts/profile/posted?page=2")
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.PostListResponse
	decode(t, w, &list)
	assert.Len(t, list.Posts, 2)

	w = c.get("/accounts/profile/commented")
	assert.Equal(t, http.StatusOK, w.Code)
	w = c.get("/accounts/profile/reply")
	assert.Equal(t, http.StatusOK, w.Code)
}
