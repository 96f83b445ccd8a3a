package handlers

import (
	"strings"
	"sync"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request DTOs to gin's validator.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("phone10", validatePhone10)
	})
}

// validatePhone10 accepts exactly ten digits, ignoring surrounding whitespace.
func validatePhone10(fl validator.FieldLevel) bool {
	return domain.IsPhoneNumber(strings.TrimSpace(fl.Field().String()))
}
