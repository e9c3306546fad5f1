package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/futureedge/counselling/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// custom validation tags
const (
	mobileTag  = "mobile10"
	stageTag   = "stage"
	docTypeTag = "doctype"
	notBlank   = "notblank"
)

// MobilePattern matches a ten digit phone number
var MobilePattern = regexp.MustCompile(`^\d{10}$`)

var (
	once       sync.Once
	translator ut.Translator
	setupErr   error
)

// FieldError is one failed field in a request body
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Setup registers custom rules, JSON field names and English messages on
// gin's validator. It is safe to call more than once.
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin binding engine is not validator/v10")
			return
		}
		setupErr = register(v)
	})
	return setupErr
}

func register(v *validator.Validate) error {
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, translator); err != nil {
		return err
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		mobileTag: func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || MobilePattern.MatchString(s)
		},
		stageTag: func(fl validator.FieldLevel) bool {
			return domain.IsKnownStage(fl.Field().String())
		},
		docTypeTag: func(fl validator.FieldLevel) bool {
			return domain.IsKnownDocumentType(fl.Field().String())
		},
		notBlank: func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	messages := map[string]string{
		mobileTag:  "{0} must be a 10 digit number",
		stageTag:   "{0} must be one of the admission stages",
		docTypeTag: "{0} must be a known document type",
		notBlank:   "{0} cannot be blank",
	}
	for tag, text := range messages {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, translator,
			func(trans ut.Translator) error { return trans.Add(tag, text, true) },
			func(trans ut.Translator, fe validator.FieldError) string {
				msg, _ := trans.T(tag, fe.Field())
				return msg
			})
		if err != nil {
			return err
		}
	}
	return nil
}

// Translate converts validator errors into per-field messages. It returns
// nil when err is not a validation error.
func Translate(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Error()
		if translator != nil {
			msg = fe.Translate(translator)
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// IsValidMobile reports whether s is empty or ten digits
func IsValidMobile(s string) bool {
	return s == "" || MobilePattern.MatchString(s)
}
