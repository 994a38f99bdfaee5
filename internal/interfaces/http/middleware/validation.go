package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dreamshub/backend/internal/domain/ledger"
)

// RegisterValidators installs custom validation rules on gin's request
// binding validator. Call once at startup before serving requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("movementtype", validateMovementType)
}

func validateMovementType(fl validator.FieldLevel) bool {
	return ledger.MovementType(fl.Field().String()).IsValid()
}
