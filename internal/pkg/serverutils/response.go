package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// HTTPError carries a status code up to ErrorHandlerMiddleware. Err is kept
// for logging and errors.Is; Message is what the client sees.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

var validate = validator.New()

func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewHTTPError(fiber.StatusBadRequest, err.Error(), err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return NewHTTPError(fiber.StatusBadRequest, strings.Join(msgs, ", "), err)
}

// ErrorHandlerMiddleware renders any error returned further down the chain as
// an ErrorResponse with the matching status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var httpErr *HTTPError
		var fiberErr *fiber.Error
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &httpErr):
			code, message = httpErr.Code, httpErr.Message
		case errors.As(err, &fiberErr):
			code, message = fiberErr.Code, fiberErr.Message
		case errors.As(err, &verrs):
			code, message = fiber.StatusBadRequest, verrs.Error()
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
