package core

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

// RecordSeparator is the line that closes a student block in the data file.
const RecordSeparator = "---"

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	noCommaTag  = "nocomma"
	noCommaText = "{0} must not contain a comma"

	notSepTag  = "notsep"
	notSepText = fmt.Sprintf("{0} must not be %q", RecordSeparator)

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use `field` tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("field"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(noCommaTag, noCommaValidation)
	RegisterCustomTranslation(noCommaTag, noCommaText)

	_ = Validate.RegisterValidation(notSepTag, notSepValidation)
	RegisterCustomTranslation(notSepTag, notSepText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateStruct validates `s` and converts validator errors into a ValidationError
// carrying one translated FieldError per failing field.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	msgs := make([]string, 0, len(vErrs))
	for _, vErr := range vErrs {
		msg := vErr.Translate(Translator)
		fld := vErr.Namespace()
		if idx := strings.Index(fld, "."); idx >= 0 {
			fld = fld[idx+1:] // drop the struct name
		}
		flds = append(flds, FieldError{Field: fld, Error: msg})
		msgs = append(msgs, msg)
	}
	return NewValidationError(errors.New(strings.Join(msgs, "; ")), flds...)
}

// Custom Global Validators

// noCommaValidation rejects values that would break the comma separated data file.
func noCommaValidation(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), ",")
}

// notSepValidation rejects the record separator used as a value.
func notSepValidation(fl validator.FieldLevel) bool {
	return fl.Field().String() != RecordSeparator
}
