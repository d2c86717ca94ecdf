package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var slotIntervals = map[int64]bool{5: true, 10: true, 15: true, 30: true, 60: true}

// RegisterValidations installs the custom binding validators and makes
// validation errors report json field names instead of Go ones. Call once at
// startup, before the router handles requests.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})

	// slot_interval restricts calendar slot sizes to the supported grid.
	if err := v.RegisterValidation("slot_interval", func(fl validator.FieldLevel) bool {
		return slotIntervals[fl.Field().Int()]
	}); err != nil {
		panic(err)
	}
}
