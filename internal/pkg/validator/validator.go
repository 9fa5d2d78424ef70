package validator

import (
	"fmt"

	"tutorhub/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := registerTags(validate); err != nil {
		panic(err)
	}
}

func registerTags(v *validator.Validate) error {
	if err := v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return domain.IsClock(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register clock: %w", err)
	}
	if err := v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return domain.Weekday(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("register weekday: %w", err)
	}
	if err := v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("register date: %w", err)
	}
	return nil
}

// RegisterGinTags makes the custom tags available in gin binding tags.
func RegisterGinTags() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return registerTags(v)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Namespace()] = e.Tag()
	}
	return out
}
