package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vietddude/employees/internal/core/domain"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so messages match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// violationMessages maps "field.tag" to the message reported to callers.
var violationMessages = map[string]string{
	"name.notblank":   "Employee name cannot be blank",
	"salary.required": "Employee salary cannot be null",
	"salary.gt":       "Employee salary must be greater than zero",
	"age.required":    "Employee age cannot be null",
	"age.gte":         "Employee age must be at least 16",
	"age.lte":         "Employee age must be at most 75",
	"title.notblank":  "Employee title cannot be blank",
}

// CreateRequest checks the shape of a create payload before it is transmitted.
func CreateRequest(req domain.CreateEmployeeRequest) error {
	err := structValidator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidRequest([]string{err.Error()})
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := violationMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "failed on '" + fe.Tag() + "'"
		}
		violations = append(violations, fe.Field()+": "+msg)
	}
	return domain.NewInvalidRequest(violations)
}
