package validation

import (
	"regexp"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var mobileRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Register installs the custom binding rules on gin's validator engine.
// Call once before the router starts handling requests.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("mobile", validMobile)
	_ = v.RegisterValidation("userpassword", validUserPassword)
}

func validMobile(fl validator.FieldLevel) bool {
	return mobileRe.MatchString(fl.Field().String())
}

// validUserPassword requires at least 8 characters, letters and digits only,
// with at least one of each.
func validUserPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
