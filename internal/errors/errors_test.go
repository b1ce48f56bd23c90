package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "purchase not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestNotFoundError_ErrorInterface(t *testing.T) {
	var err error = NewNotFoundError("entity not found")
	assert.NotNil(t, err)
	assert.Equal(t, "entity not found", err.Error())
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "email", Message: "invalid email"},
		{Field: "name", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query purchases", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query purchases", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query purchases")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("decoding: %w", NewValidationError("bad body"))

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "bad body", ve.Message)
}

func TestConflictError(t *testing.T) {
	err := NewConflictError("username taken")

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "username taken", ce.Error())

	_, ok = IsConflictError(errors.New("other"))
	assert.False(t, ok)
}

func TestUnauthorizedError(t *testing.T) {
	_, ok := IsUnauthorizedError(NewUnauthorizedError("bad token"))
	assert.True(t, ok)

	_, ok = IsUnauthorizedError(NewNotFoundError("user not found"))
	assert.False(t, ok)
}

func TestIsInternalError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("purchase: %w", NewInternalError("insert purchase line", cause))

	ie, ok := IsInternalError(err)
	assert.True(t, ok)
	assert.Equal(t, "insert purchase line", ie.Message)
	assert.True(t, errors.Is(err, cause))
}

func TestPurchaseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *PurchaseError
		code     PurchaseErrorCode
		contains string
	}{
		{
			name:     "insufficient stock",
			err:      NewInsufficientStockError(1),
			code:     InsufficientStock,
			contains: "No hay suficientes unidades para la venta.",
		},
		{
			name:     "invalid product",
			err:      NewInvalidProductError(999),
			code:     InvalidProduct,
			contains: "Ingresó uno o mas productos inválidos.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe, ok := IsPurchaseError(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.code, pe.Code)
			assert.Contains(t, pe.Error(), tt.contains)
		})
	}
}

func TestPurchaseErrorCode_WireValues(t *testing.T) {
	assert.Equal(t, "InsufficientStock", string(InsufficientStock))
	assert.Equal(t, "InvalidProduct", string(InvalidProduct))
}
