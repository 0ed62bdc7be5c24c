package router

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.mongodb.org/mongo-driver/v2/bson"

	"julianmorley.ca/con-plar/storefront/pkg/global"
)

var registerOnce sync.Once

// registerValidators adds the objectid and notblank rules to gin's validator
// and makes field errors report json/uri/form names instead of Go field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(tagName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			_, err := bson.ObjectIDFromHex(fl.Field().String())
			return err == nil
		})
	})
}

func tagName(field reflect.StructField) string {
	for _, key := range []string{"json", "uri", "form"} {
		name := strings.SplitN(field.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

var fieldLabels = map[string]string{
	"productId":   "Product ID",
	"itemId":      "Item ID",
	"sessionId":   "Session ID",
	"quantity":    "Quantity",
	"name":        "Product name",
	"description": "Product description",
	"price":       "Product price",
	"image":       "Product image",
	"category":    "Category",
	"stock":       "Stock",
	"minPrice":    "Minimum price",
	"maxPrice":    "Maximum price",
}

// fieldRanges phrases paired min/max rules the way clients expect.
var fieldRanges = map[string]string{
	"quantity":  "Quantity must be between 1 and 100",
	"sessionId": "Session ID must be between 10 and 100 characters",
}

func translateValidationErrors(verrs validator.ValidationErrors) []global.ValidationError {
	out := make([]global.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, global.ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "notblank":
		return label + " cannot be blank"
	case "objectid":
		return fmt.Sprintf("Invalid %s format", lowerFirst(label))
	case "min", "max":
		if msg, ok := fieldRanges[field]; ok {
			return msg
		}
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s %s characters", label, bound, fe.Param())
		}
		return fmt.Sprintf("%s must be %s %s", label, bound, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be less than %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed the %s check", label, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
