package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"treadmill-storefront/internal/cart"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const quantityField = "quantity"

// RequestValidator plugs go-playground/validator into echo's Validate hook.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate reports a failure on the quantity field as INVALID_QUANTITY and
// every other failure as INVALID_INPUT.
func (v *RequestValidator) Validate(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "Quantity" {
				if fe.Tag() == "max" {
					return cart.NewInvalidQuantity(cart.ErrMsgQuantityTooLarge)
				}
				return cart.NewInvalidQuantity(cart.ErrMsgQuantityPositive)
			}
		}
	}
	return cart.NewInvalidInput(err.Error())
}

// bindError maps a request body that could not be decoded. Only a type
// mismatch on quantity counts as a quantity error.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == quantityField {
			return mapError(cart.NewInvalidQuantity(cart.ErrMsgQuantityPositive))
		}
		return mapError(cart.NewInvalidInputf("%s must be a %s", typeErr.Field, typeErr.Type))
	}
	return mapError(cart.NewInvalidInput("invalid request body"))
}

func mapError(err error) error {
	switch cart.CodeOf(err) {
	case cart.CodeInvalidQuantity, cart.CodeInvalidInput:
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"code":    cart.CodeOf(err).String(),
			"message": err.Error(),
		})
	case cart.CodeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{
			"code":    cart.CodeNotFound.String(),
			"message": err.Error(),
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
