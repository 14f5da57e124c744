package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/homebase/internal/models"
)

const (
	MsgRequired      = "필수 항목입니다."
	MsgInvalidChoice = "올바르게 선택해 주세요. 선택하신 것이 선택가능항목이 아닙니다."
	MsgInvalidEmail  = "유효한 이메일 주소를 입력하십시오."
	MsgInvalidNumber = "정수를 입력하세요."
	MsgInvalidDate   = "올바른 날짜를 입력하세요."
	MsgInvalidTime   = "올바른 날짜/시각을 입력하세요."
)

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator and makes
// it report fields by their form names. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(formFieldName)
		err = v.RegisterValidation("eventcolor", func(fl validator.FieldLevel) bool {
			return models.EventColor(fl.Field().String()).Valid()
		})
	})
	return err
}

func formFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// FieldErrors turns a binding error into field -> messages. It returns nil
// when err does not come from validation.
func FieldErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("%s자 이하로 입력해 주세요.", fe.Param())
	case "min":
		return fmt.Sprintf("%s자 이상 입력해 주세요.", fe.Param())
	case "email":
		return MsgInvalidEmail
	case "eventcolor", "oneof":
		return MsgInvalidChoice
	case "gte", "lte":
		return MsgInvalidNumber
	default:
		return fmt.Sprintf("%s 값이 올바르지 않습니다.", fe.Field())
	}
}
