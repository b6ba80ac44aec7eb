package countries

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a client-visible validation failure
type ErrorKind string

const (
	EmptyField    ErrorKind = "EmptyField"
	DuplicateName ErrorKind = "DuplicateName"
	DuplicateCode ErrorKind = "DuplicateCode"
	NotFound      ErrorKind = "NotFound"
)

// ValidationError is the single failure reported for a request
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation unwraps err into a *ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsKind reports whether err is a ValidationError of kind k
func IsKind(err error, k ErrorKind) bool {
	ve, ok := AsValidation(err)
	return ok && ve.Kind == k
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate checks required fields in order nombre, codigo, capital and
// returns the first one that is blank
func (c *Country) Validate() error {
	if isBlank(c.Name) {
		return &ValidationError{Kind: EmptyField, Field: string(FieldName), Message: "El nombre del país no puede estar vacío"}
	}
	if isBlank(c.Code) {
		return &ValidationError{Kind: EmptyField, Field: string(FieldCode), Message: "El código del país no puede estar vacío"}
	}
	if isBlank(c.Capital) {
		return &ValidationError{Kind: EmptyField, Field: string(FieldCapital), Message: "La capital del país no puede estar vacía"}
	}
	return nil
}

func errDuplicateName(name string) *ValidationError {
	return &ValidationError{Kind: DuplicateName, Field: string(FieldName), Message: "Ya existe un país con el nombre: " + name}
}

func errDuplicateCode(code string) *ValidationError {
	return &ValidationError{Kind: DuplicateCode, Field: string(FieldCode), Message: "Ya existe un país con el código: " + code}
}

func errNotFoundID(id int64) *ValidationError {
	return &ValidationError{Kind: NotFound, Message: fmt.Sprintf("País no encontrado con id: %d", id)}
}

func errNotFoundName(name string) *ValidationError {
	return &ValidationError{Kind: NotFound, Field: string(FieldName), Message: "País no encontrado con nombre: " + name}
}

func errNotFoundContinent(continent string) *ValidationError {
	return &ValidationError{Kind: NotFound, Field: string(FieldContinent), Message: "No se encontraron países con el continente: " + continent}
}
