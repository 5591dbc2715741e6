package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// report json field names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func ValidateStruct(s any) error {
	return getValidator().Struct(s)
}

// ValidationMessage flattens validation errors into one sentence, in field order.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if err != nil {
			return err.Error()
		}
		return ""
	}

	var missing []string
	var other []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		other = append(other, fieldMessage(fe))
	}

	if len(missing) > 0 {
		verb := " is required"
		if len(missing) > 1 {
			verb = " are required"
		}
		return joinFields(missing) + verb
	}
	return other[0]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fe.Field() + " is invalid"
	}
}

func joinFields(fields []string) string {
	if len(fields) == 1 {
		return fields[0]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
}
