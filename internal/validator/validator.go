// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate(dto) after binding.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator wraps a validator.Validate instance.
type RequestValidator struct {
	validate *validator.Validate
}

// New returns a RequestValidator ready to plug into echo.Echo.Validator.
func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Validation failures are reported
// as 400 with the first offending field named, matching the error shape
// the handlers use elsewhere.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return echo.NewHTTPError(http.StatusBadRequest,
				"invalid field "+e.Field()+": failed on "+e.Tag())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
