// Package validators builds the request validator used by the handlers.
package validators

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts local@domain.tld where no part contains whitespace
// or '@'. It is deliberately looser than RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// New returns a validator with the "simple_email" tag registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return v
}

// FailedTag returns the first failing tag among the given ones, in the order
// they are listed, or "" when err reports none of them.
func FailedTag(err error, tags ...string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, tag := range tags {
		for _, fe := range verrs {
			if fe.Tag() == tag {
				return tag
			}
		}
	}
	return ""
}
