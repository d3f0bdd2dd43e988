package services

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
)

func initValidator() {
	validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")
	// Only fails on a programming error in the bundled translations.
	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateStruct runs the validate tags on v and returns a ValidationError
// keyed by json field name, or nil.
func validateStruct(v interface{}) error {
	validatorOnce.Do(initValidator)

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields[fe.Field()] = fe.Translate(translator)
	}
	return ValidationError("validation failed", fields)
}

// mergeFieldErrors folds extra field errors into err, which must be nil or a
// ValidationError from validateStruct.
func mergeFieldErrors(err error, extra map[string]string) error {
	if len(extra) == 0 {
		return err
	}
	if err == nil {
		return ValidationError("validation failed", extra)
	}

	var verr *Error
	if !errors.As(err, &verr) || verr.Kind != KindValidation {
		return err
	}
	for k, v := range extra {
		if _, exists := verr.Fields[k]; !exists {
			verr.Fields[k] = v
		}
	}
	return verr
}
