package validator

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/vocatrack/internal/pkg/strcase"
)

var ErrTranslatorNotFound = errors.New("validator: english translator not found")

// V10ValidationError maps snake_case field names to readable messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}
	//nolint:errchkjson // map[string]string always marshals
	b, _ := json.Marshal(map[string]string(vs))
	return string(b)
}

func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// V10Validator is backed by go-playground/validator with English messages.
type V10Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

type customRule struct {
	tag     string
	fn      validator.Func
	message string
}

// customRules are registered on top of the built-in tags.
var customRules = []customRule{
	{tag: "notblank", fn: validators.NotBlank, message: "{0} is a required field"},
}

func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	trans, ok := ut.New(english, english).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, err
		}
		if err := validate.RegisterTranslation(rule.tag, trans, addMessage(rule.tag, rule.message), translateField); err != nil {
			return nil, err
		}
	}

	return &V10Validator{validate: validate, trans: trans}, nil
}

// Validate returns V10ValidationError when a tag fails and passes any other
// error (for example a non-struct argument) through unchanged.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.trans)
	}
	return out
}

func addMessage(tag, msg string) validator.RegisterTranslationsFunc {
	return func(t ut.Translator) error {
		return t.Add(tag, msg, false)
	}
}

func translateField(t ut.Translator, fe validator.FieldError) string {
	msg, err := t.T(fe.Tag(), fe.Field())
	if err != nil {
		slog.Warn("validator: missing translation", "tag", fe.Tag(), "error", err)
		return fe.Error()
	}
	return msg
}
