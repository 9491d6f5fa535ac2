package utils

import (
	"labtrail-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var accessionCodeRegex = regexp.MustCompile(constvars.RegexAccessionCode)

func init() {
	validate = validator.New()
	validate.RegisterValidation("accession_code", validateAccessionCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateAccessionCode(fl validator.FieldLevel) bool {
	return accessionCodeRegex.MatchString(fl.Field().String())
}
