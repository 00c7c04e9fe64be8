package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/services"
)

var (
	colorPattern    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// NewValidator returns a validator that reports JSON field names and knows
// the money, color and currency rules used by the request DTOs.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Money is validated as its exact decimal text, not the rounded form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(models.Money); ok {
			return m.Decimal.String()
		}
		return nil
	}, models.Money{})

	mustRegister(v, "price", func(fl validator.FieldLevel) bool {
		m, err := models.NewMoney(fl.Field().String())
		return err == nil && m.Problem() == ""
	})
	mustRegister(v, "hexcolor6", func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		return currencyPattern.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// bind parses the JSON body into dst and validates it. Both failures are
// ValidationErrors (422).
func bind(c *fiber.Ctx, v *validator.Validate, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Validation("Invalid request body", []services.FieldError{{
			Field:   "body",
			Message: err.Error(),
			Type:    "json_invalid",
		}})
	}
	return validateStruct(v, dst)
}

func validateStruct(v *validator.Validate, dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation("Validation failed", nil)
	}
	details := make([]services.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describe(fe))
	}
	return apperror.Validation("Validation failed", details)
}

func describe(fe validator.FieldError) services.FieldError {
	out := services.FieldError{Field: fe.Field(), Type: "value_error"}
	switch fe.Tag() {
	case "required":
		out.Message, out.Type = "Field required", "missing"
	case "email":
		out.Message = "value is not a valid email address"
	case "url":
		out.Message, out.Type = "Input should be a valid URL", "url_parsing"
	case "min":
		out.Message, out.Type = fmt.Sprintf("String should have at least %s characters", fe.Param()), "string_too_short"
	case "max":
		out.Message, out.Type = fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long"
	case "gt":
		out.Message, out.Type = fmt.Sprintf("Input should be greater than %s", fe.Param()), "greater_than"
	case "price":
		out.Message = priceMessage(fe.Value())
	case "hexcolor6":
		out.Message = "Color must be a valid hex code (e.g., #FF5733)"
	case "currency":
		out.Message = "Currency must be a 3-letter uppercase code (e.g., USD, EUR)"
	default:
		out.Message = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return out
}

func priceMessage(value any) string {
	var m models.Money
	switch v := value.(type) {
	case string:
		parsed, err := models.NewMoney(v)
		if err != nil {
			return "Price must be a valid decimal amount"
		}
		m = parsed
	case models.Money:
		m = v
	case *models.Money:
		if v == nil {
			return "Field required"
		}
		m = *v
	}
	if problem := m.Problem(); problem != "" {
		return "Price " + problem
	}
	return "Price must be a valid decimal amount"
}

// pathID parses a positive integer route parameter.
func pathID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperror.Validation("Validation failed", []services.FieldError{{
			Field:   name,
			Message: "Input should be a valid integer",
			Type:    "int_parsing",
		}})
	}
	return uint(id), nil
}

// queryID parses an optional positive integer query parameter.
func queryID(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, apperror.Validation("Validation failed", []services.FieldError{{
			Field:   name,
			Message: "Input should be a valid integer",
			Type:    "int_parsing",
		}})
	}
	v := uint(id)
	return &v, nil
}
