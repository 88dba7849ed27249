package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BenAji/agora/internal/domain/event"
	"github.com/BenAji/agora/internal/domain/rsvp"
	"github.com/BenAji/agora/internal/domain/user"
)

// RegisterValidators adds domain enums to gin's binding validator
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return event.IsValidType(event.Type(fl.Field().String()))
	})
	v.RegisterValidation("rsvpstatus", func(fl validator.FieldLevel) bool {
		return rsvp.IsValidStatus(rsvp.Status(fl.Field().String()))
	})
	v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return user.IsValidRole(user.Role(fl.Field().String()))
	})
}
