package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	aadhaarPattern    = regexp.MustCompile(`^\d{12}$`)
)

const passwordSpecials = "@$!%*?&"

// Validator wraps go-playground/validator with the account field rules and
// turns failures into field -> message maps keyed by JSON name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return aadhaarPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct returns nil when s is valid.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "Invalid request"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func isStrongPassword(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func fieldMessage(fe validator.FieldError) string {
	label := map[string]string{
		"name":     "Name",
		"email":    "Email",
		"password": "Password",
		"aadhaar":  "Aadhaar number",
	}[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "max":
		return label + " must be less than " + fe.Param() + " characters"
	case "email":
		return "Please enter a valid email address"
	case "personname":
		return "Name can only contain letters and spaces"
	case "strongpassword":
		return "Password must contain uppercase, lowercase, number, and special character"
	case "aadhaar":
		return "Aadhaar number must be exactly 12 digits"
	default:
		return label + " is invalid"
	}
}
