package services

import (
	"errors"
	"reflect"
	"strings"

	locale_en "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	translations_en "github.com/go-playground/validator/v10/translations/en"

	"storemanager/internal/apperrors"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	// Report violations under the json field names clients actually send.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	english := locale_en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	if err := translations_en.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
}

// validationError converts the first field violation into the domain's
// invalid_data error. The message keeps the validation library's default
// phrasing, except that "greater" is rewritten to "larger".
func validationError(err error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg := strings.ReplaceAll(verrs[0].Translate(trans), "greater", "larger")
		return apperrors.InvalidData(msg)
	}
	return apperrors.InvalidData(err.Error())
}
