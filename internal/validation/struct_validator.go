package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "moviecli/internal/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance. Field names in errors use
// the yaml tag, falling back to the json tag, so messages match config keys.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"yaml", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates s and converts failures into a VALIDATION AppError with
// one context entry per offending field.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return toAppError(err)
}

// Var validates a single value against a tag such as "min=1,max=100".
func Var(field string, value any, tag string) error {
	err := Validator().Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("%s failed %q validation", field, fieldErrs[0].Tag())).
			WithContext(field, describe(fieldErrs[0]))
	}
	return apperrors.NewAppError(apperrors.ErrTypeValidation, "validation failed", err)
}

func toAppError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "validation failed", err)
	}

	names := make([]string, 0, len(fieldErrs))
	appErr := apperrors.NewAppValidationError("")
	for _, fe := range fieldErrs {
		ns := trimRoot(fe.Namespace())
		names = append(names, ns)
		appErr.WithContext(ns, describe(fe))
	}
	appErr.Message = "invalid fields: " + strings.Join(names, ", ")
	return appErr
}

func describe(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// trimRoot drops the top-level struct name from a validator namespace.
func trimRoot(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
