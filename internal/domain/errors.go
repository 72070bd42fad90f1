package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthenticated      = errors.New("no autenticado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrValidation           = errors.New("error de validación")
	ErrMethodNotAllowed     = errors.New("método no permitido")
	ErrBackend              = errors.New("error del servidor remoto")
	ErrNetwork              = errors.New("error de conexión con el servidor")
	ErrInvalidToken         = errors.New("token inválido")
	ErrConfirmationRequired = errors.New("se requiere confirmación")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
)

// ValidationError error de validación con mensaje listo para el usuario.
// errors.Is(err, ErrValidation) es verdadero.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Is enlaza con ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid construye un *ValidationError.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }
