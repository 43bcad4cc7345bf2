package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func InitValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("hexcolor6", ValidateHexColorRule)
	}
}

func ValidateHexColorRule(fl validator.FieldLevel) bool {
	return ValidateHexColor(fl.Field().String())
}

// ValidateHexColor accepts 6-digit hex colors with a leading #.
func ValidateHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}
