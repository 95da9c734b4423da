package service

import "errors"

// Errores de dominio que la capa HTTP traduce a códigos de estado.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrBadQuantity        = errors.New("quantity must be at least 1")
	ErrBadStatus          = errors.New("invalid order status")
	ErrBadCategory        = errors.New("invalid category")
	ErrBadKind            = errors.New("invalid content kind")
	ErrBadPayload         = errors.New("payload does not match content kind")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrForbidden          = errors.New("operation not allowed")
)
