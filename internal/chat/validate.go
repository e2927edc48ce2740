package chat

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type joinInput struct {
	Name string `validate:"required,min=3"`
}

type postInput struct {
	From string `validate:"required"`
	To   string `validate:"required,min=3"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

type listInput struct {
	Viewer string `validate:"required"`
}

// checkInput runs struct-tag validation and converts the result into a
// ValidationError carrying one message per violated constraint.
func checkInput(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &StoreError{Op: "validate", Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
