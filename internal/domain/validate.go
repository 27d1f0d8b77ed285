package domain

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var postalCodeRe = regexp.MustCompile(`^\d{5}$`)

var validate = func() *validator.Validate {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("zip5", func(fl validator.FieldLevel) bool {
		return postalCodeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("element", func(fl validator.FieldLevel) bool {
		_, ok := LookupElement(fl.Field().String())
		return ok
	})
	return v
}()

// ForecastRequest is the caller's input to a forecast session.
type ForecastRequest struct {
	PostalCode    string   `validate:"zip5"`
	ReferenceTime int64    `validate:"gte=0"`
	Elements      []string `validate:"omitempty,dive,element"`
	Format        Format
}

// ValidatePostalCode checks the 5-digit postal code rule.
func ValidatePostalCode(postalCode string) error {
	if !postalCodeRe.MatchString(postalCode) {
		return &InvalidInputError{Field: "postal code", Message: "must be exactly 5 digits, got " + quote(postalCode)}
	}
	return nil
}

// Validate checks the request without touching the network.
func (r ForecastRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InvalidInputError{Field: "request", Message: err.Error()}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "zip5":
		return ValidatePostalCode(r.PostalCode)
	case "element":
		return &InvalidInputError{Field: "elements", Message: "unknown element code " + quote(fe.Value())}
	default:
		return &InvalidInputError{Field: fe.Field(), Message: "failed " + fe.Tag() + " check"}
	}
}

func quote(v any) string {
	s, _ := v.(string)
	return `"` + s + `"`
}
