package helper

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate memvalidasi struct DTO dengan satu instance validator bersama.
func Validate(s any) error {
	return validate.Struct(s)
}
