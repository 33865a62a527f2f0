package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"inkwell/app/errs"
)

var validate = validator.New()

// checkStruct runs validator tags on v and converts any violations
// into a taxonomy validation error naming every offending field.
func checkStruct(message string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.Internal(err)
	}
	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errs.FieldError{
			Field:   jsonName(fe),
			Message: fieldMessage(fe),
		})
	}
	return errs.Validation(message, fields...)
}

func jsonName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		return "title"
	case "Content":
		return "content"
	case "Category":
		return "category"
	case "Image":
		return "image"
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Role":
		return "role"
	case "UserID":
		return "userId"
	case "Status":
		return "status"
	case "PasswordHash":
		return "password"
	default:
		return fe.Field()
	}
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
