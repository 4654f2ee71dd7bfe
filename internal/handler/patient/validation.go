package patient

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// diente validates a tooth number against the adult dental chart (1-32).
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("diente", func(fl validator.FieldLevel) bool {
			n := fl.Field().Int()
			return n >= 1 && n <= 32
		})
	}
}
