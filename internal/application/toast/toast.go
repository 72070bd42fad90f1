// Package toast acumula las notificaciones no bloqueantes de una petición.
//
// El cliente HTTP del backend publica aquí cada fallo antes de devolver el
// error, de modo que los llamadores solo capturan errores para control de flujo.
package toast

import (
	"context"
	"sync"
)

// Kind tipo visual de la notificación.
type Kind string

// Tipos de notificación.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Toast notificación individual.
type Toast struct {
	Type    Kind   `json:"type"`
	Message string `json:"message"`
}

// Toaster colección segura para goroutines. Un Toaster nil descarta todo.
type Toaster struct {
	mu    sync.Mutex
	items []Toast
}

// New crea un Toaster vacío.
func New() *Toaster { return &Toaster{} }

func (t *Toaster) push(kind Kind, msg string) {
	if t == nil || msg == "" {
		return
	}
	t.mu.Lock()
	t.items = append(t.items, Toast{Type: kind, Message: msg})
	t.mu.Unlock()
}

// Success agrega un toast de éxito.
func (t *Toaster) Success(msg string) { t.push(KindSuccess, msg) }

// Error agrega un toast de error.
func (t *Toaster) Error(msg string) { t.push(KindError, msg) }

// Info agrega un toast informativo.
func (t *Toaster) Info(msg string) { t.push(KindInfo, msg) }

// Items copia de las notificaciones acumuladas.
func (t *Toaster) Items() []Toast {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.items...)
}

// Drain devuelve y vacía las notificaciones.
func (t *Toaster) Drain() []Toast {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.items
	t.items = nil
	return out
}

type ctxKey struct{}

// WithToaster asocia t al contexto de la petición.
func WithToaster(ctx context.Context, t *Toaster) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext devuelve el Toaster de la petición o nil.
func FromContext(ctx context.Context) *Toaster {
	t, _ := ctx.Value(ctxKey{}).(*Toaster)
	return t
}

// Error publica un error en el Toaster del contexto, si existe.
func Error(ctx context.Context, msg string) { FromContext(ctx).Error(msg) }

// Success publica un éxito en el Toaster del contexto, si existe.
func Success(ctx context.Context, msg string) { FromContext(ctx).Success(msg) }

// Info publica un aviso en el Toaster del contexto, si existe.
func Info(ctx context.Context, msg string) { FromContext(ctx).Info(msg) }

// Silence devuelve un contexto cuyas notificaciones se descartan.
func Silence(ctx context.Context) context.Context { return WithToaster(ctx, nil) }
