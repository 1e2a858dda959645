package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"storemanager/internal/apperrors"
)

// productPayload is the request body for product create/edit.
type productPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// productBodyError maps a body-parse failure to invalid_data. Type
// mismatches name the offending field so the message matches the phrasing
// of the schema validation applied further down.
func productBodyError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.InvalidData(fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type)))
	}
	return apperrors.InvalidData("Invalid request body")
}

// saleBodyError maps a body-parse failure to the uniform line-item message.
func saleBodyError(error) error {
	return apperrors.InvalidData("Wrong product ID or invalid quantity")
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}
