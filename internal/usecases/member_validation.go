package usecases

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const memberEmailTag = "member_email"

// Deliberately permissive: local part of printable specials, a dotted
// domain with no TLD requirement.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

// IsValidEmail reports whether email matches the member email pattern.
// Matching is done on the lower-cased value.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.ToLower(email))
}

func newMemberValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(memberEmailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	return v
}

// validationMessage turns validator output into the single client-facing
// message. Missing fields win over a malformed email.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	for _, fe := range verrs {
		if fe.Tag() != memberEmailTag {
			return MsgAllFieldsRequired
		}
	}
	return MsgInvalidEmail
}
