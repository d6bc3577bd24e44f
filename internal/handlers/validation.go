package handlers

import (
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the ledger's custom binding tags on gin's
// validator. It is safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return domain.AccountType(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("accountnature", func(fl validator.FieldLevel) bool {
			return domain.AccountNature(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("entrystatus", func(fl validator.FieldLevel) bool {
			return domain.JournalStatus(fl.Field().String()).IsValid()
		})
	})
}
