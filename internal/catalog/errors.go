package catalog

import "fmt"

// ValidationError es un pedido malformado o inconsistente.
// Falla antes de cualquier I/O; el cliente puede corregir y reintentar.
type ValidationError struct {
	Field   string
	Message string
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", validationError.Field, validationError.Message)
}

// StoreError es cualquier falla contra la DB: conectividad, constraint
// o statement malformado. No se reintenta acá; el detalle interno se
// loguea pero nunca llega al cliente.
type StoreError struct {
	Err error
}

func (storeError *StoreError) Error() string {
	return fmt.Sprintf("store error: %v", storeError.Err)
}

func (storeError *StoreError) Unwrap() error {
	return storeError.Err
}

// newValidationError arma el error con el campo ofensor.
func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
