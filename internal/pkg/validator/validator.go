package validator

import (
	"errors"
	"reflect"
	"strings"

	"studiobook/internal/domain"
	"studiobook/internal/scheduling"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.SetTagName("binding")
	if err := registerCustom(validate); err != nil {
		panic(err)
	}
}

// RegisterBindingValidations adds the custom tags to gin's binding engine so
// ShouldBindJSON understands them too.
func RegisterBindingValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return registerCustom(v)
}

func registerCustom(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)

	rules := map[string]validator.Func{
		"studio": func(fl validator.FieldLevel) bool {
			return domain.Studio(fl.Field().String()).Valid()
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			return validClock(fl.Field().String())
		},
		"civildate": func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDate(fl.Field().String())
			return err == nil
		},
		"repetition": func(fl validator.FieldLevel) bool {
			return domain.RepetitionKind(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// validClock accepts zero-padded 24h "HH:MM" only.
func validClock(s string) bool {
	return len(s) == len(scheduling.ClockLayout) && scheduling.ValidClock(s)
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Validate struct fields. Returns json field name -> failed tag, or nil.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	return Fields(err)
}

// Fields extracts field errors from a ShouldBind failure. Decoding errors
// that are not validation failures come back under "_".
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
