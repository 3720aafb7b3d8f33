package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		for _, r := range []string{"customer", "vendor", "admin", "super_admin"} {
			if role == r {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		for _, c := range []string{"airtime", "data", "electricity", "cable", "education", "recharge_card"} {
			if category == c {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("authscheme", func(fl validator.FieldLevel) bool {
		scheme := fl.Field().String()
		for _, s := range []string{"none", "token", "api_key", "monnify", "vpay", "paylony", "strowallet"} {
			if scheme == s {
				return true
			}
		}
		return false
	})

	validate.RegisterValidation("adjustmode", func(fl validator.FieldLevel) bool {
		mode := fl.Field().String()
		for _, m := range []string{"increase_percentage", "decrease_percentage", "increase_fixed", "decrease_fixed"} {
			if mode == m {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt":
			errors[field] = "Value must be greater than " + err.Param()
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "uuid":
			errors[field] = "Invalid identifier"
		case "role":
			errors[field] = "Invalid role. Must be: customer, vendor, admin, or super_admin"
		case "category":
			errors[field] = "Invalid category. Must be: airtime, data, electricity, cable, education, or recharge_card"
		case "authscheme":
			errors[field] = "Invalid auth scheme"
		case "adjustmode":
			errors[field] = "Invalid adjustment mode"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
