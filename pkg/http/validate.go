package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names so issues point at the JSON key.
	validate.RegisterTagNameFunc(jsonFieldName)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ReadAndValidateRequest binds the body into req, applies defaults and validates it.
// It returns a 422 AppError listing every rejected field, or nil.
func ReadAndValidateRequest(c echo.Context, req interface{}) *AppError {
	// A body without Content-Type is read as JSON.
	if r := c.Request(); r.ContentLength != 0 && r.Header.Get(echo.HeaderContentType) == "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	if err := c.Bind(req); err != nil {
		return UnprocessableEntityError(bindingRules(err)).WithError(err)
	}

	if err := defaults.Set(req); err != nil {
		return InternalError("apply request defaults").WithError(err)
	}

	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return UnprocessableEntityError(validatorDefaultRules(err)).WithError(err)
	}

	return nil
}

func bindingRules(err error) []ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return []ValidationError{{
				Type: "model_attributes_type",
				Loc:  []string{"body"},
				Msg:  "Input should be a valid object",
			}}
		}
		return []ValidationError{{
			Type: typeCode(typeErr.Type),
			Loc:  []string{"body", typeErr.Field},
			Msg:  fmt.Sprintf("Input should be a valid %s, got %s", typeName(typeErr.Type), typeErr.Value),
		}}
	}

	var trailingErr *TrailingDataError
	if errors.As(err, &trailingErr) {
		return []ValidationError{{
			Type: "json_invalid",
			Loc:  []string{"body", fmt.Sprintf("%d", trailingErr.Offset)},
			Msg:  "JSON decode error",
		}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []ValidationError{{
			Type: "json_invalid",
			Loc:  []string{"body", fmt.Sprintf("%d", syntaxErr.Offset)},
			Msg:  "JSON decode error",
		}}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return []ValidationError{{
			Type: "body_invalid",
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("%v", he.Message),
		}}
	}

	return []ValidationError{{
		Type: "value_error",
		Loc:  []string{"body"},
		Msg:  err.Error(),
	}}
}

func validatorDefaultRules(err error) []ValidationError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs := make([]ValidationError, 0, len(validationErrors))
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Type: ruleCode(e),
				Loc:  []string{"body", e.Field()},
				Msg:  getErrorMessage(e),
			})
		}
		return errs
	}

	return []ValidationError{{
		Type: "value_error",
		Loc:  []string{"body"},
		Msg:  err.Error(),
	}}
}

func ruleCode(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing"
	case "gt", "gte", "lt", "lte", "min", "max":
		return "out_of_range"
	case "oneof":
		return "enum"
	default:
		return fe.Tag()
	}
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field required"
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("String should have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Input should be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("String should have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Input should be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Input should be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("Input should be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Input should be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
}

func typeCode(t reflect.Type) string {
	switch kindOf(t) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int_parsing"
	case reflect.Float32, reflect.Float64:
		return "float_parsing"
	case reflect.String:
		return "string_type"
	case reflect.Bool:
		return "bool_parsing"
	default:
		return "type_error"
	}
}

func typeName(t reflect.Type) string {
	switch kindOf(t) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return "value"
	}
}

func kindOf(t reflect.Type) reflect.Kind {
	if t == nil {
		return reflect.Invalid
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind()
}
