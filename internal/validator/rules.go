package validator

import (
	"log"
	"regexp"
	"strings"

	"gigup_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var phoneCleaner = strings.NewReplacer("+", "", "-", "", " ", "", "(", "", ")", "")

const MinPasswordLength = 6

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("gig-email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister("gig-phone", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // пустое проверяет 'required'
		}
		return IsValidPhone(value)
	})
	mustRegister("gig-password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	mustRegister("is-gig-status", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || models.GigStatus(value).Valid()
	})
	mustRegister("is-application-status", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || models.ApplicationStatus(value).Valid()
	})
	mustRegister("is-verification-type", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || models.VerificationType(value).Valid()
	})
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone - не меньше 10 цифр после удаления + - ( ) и пробелов
func IsValidPhone(phone string) bool {
	cleaned := phoneCleaner.Replace(phone)
	if len(cleaned) < 10 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
