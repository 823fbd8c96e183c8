// Package forms declares one struct per input shape and an explicit Validate
// method returning field-level error messages, keyed by the form field name.
package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report errors under the form field name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=2,max=50"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (f *LoginForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

type ProductForm struct {
	Name        string  `form:"name" validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price" validate:"required,gte=0"`
	Category    string  `form:"category" validate:"required,oneof=men women kids accessories"`
}

func (f *ProductForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

type BroadcastForm struct {
	Message string `form:"message" validate:"required"`
}

func (f *BroadcastForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// fieldErrors converts validator errors into a field -> message map.
// Returns nil when err is nil.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_form"] = "invalid form data"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return "Value is too short (minimum " + fe.Param() + " characters)."
	case "max":
		return "Value is too long (maximum " + fe.Param() + " characters)."
	case "eqfield":
		return "Passwords must match."
	case "oneof":
		return "Not a valid choice."
	case "gte":
		return "Value must be at least " + fe.Param() + "."
	}
	return "Invalid value."
}
