// Package usecase implementa las páginas de recursos (productos, categorías,
// clientes y pedidos): carga, mutaciones con permisos y recarga completa.
package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
)

// lookupPage tamaño de las listas auxiliares (selects y nombres).
var lookupPage = entity.PageRequest{Page: 0, Size: 100}

// resourceRepo CRUD común a los repositorios de productos, categorías y clientes.
type resourceRepo[T any] interface {
	List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[T], error)
	Create(ctx context.Context, token string, in *T) (*T, error)
	Update(ctx context.Context, token string, id int64, in *T) (*T, error)
	Delete(ctx context.Context, token string, id int64) error
}

// resource contrato uniforme de una página de recursos.
type resource[T any] struct {
	repo     resourceRepo[T]
	create   permission.Action
	update   permission.Action
	remove   permission.Action
	validate func(*T) error

	msgCreated string
	msgUpdated string
	msgDeleted string
	msgConfirm string
}

// list carga una página; el error queda en la sección.
func (r *resource[T]) list(ctx context.Context, actor auth.Actor, page entity.PageRequest) dto.Section[*entity.Page[T]] {
	p, err := r.repo.List(ctx, actor.Token(), page)
	if err != nil {
		return dto.Section[*entity.Page[T]]{Data: &entity.Page[T]{Items: []T{}}, Error: err.Error()}
	}
	return dto.Section[*entity.Page[T]]{Data: p}
}

// lookup lista auxiliar sin paginación visible.
func lookup[T any](ctx context.Context, token string, list func(context.Context, string, entity.PageRequest) (*entity.Page[T], error)) dto.Section[[]T] {
	p, err := list(ctx, token, lookupPage)
	if err != nil {
		return dto.Section[[]T]{Data: []T{}, Error: err.Error()}
	}
	return dto.Section[[]T]{Data: p.Items}
}

func (r *resource[T]) check(ctx context.Context, in *T) error {
	if r.validate == nil {
		return nil
	}
	if err := r.validate(in); err != nil {
		toast.Error(ctx, err.Error())
		return err
	}
	return nil
}

func (r *resource[T]) doCreate(ctx context.Context, actor auth.Actor, in *T) error {
	if err := auth.Authorize(ctx, actor, r.create); err != nil {
		return err
	}
	if err := r.check(ctx, in); err != nil {
		return err
	}
	if _, err := r.repo.Create(ctx, actor.Token(), in); err != nil {
		return err
	}
	toast.Success(ctx, r.msgCreated)
	return nil
}

func (r *resource[T]) doUpdate(ctx context.Context, actor auth.Actor, id int64, in *T) error {
	if err := auth.Authorize(ctx, actor, r.update); err != nil {
		return err
	}
	if err := validID(ctx, id); err != nil {
		return err
	}
	if err := r.check(ctx, in); err != nil {
		return err
	}
	if _, err := r.repo.Update(ctx, actor.Token(), id, in); err != nil {
		return err
	}
	toast.Success(ctx, r.msgUpdated)
	return nil
}

func (r *resource[T]) doDelete(ctx context.Context, actor auth.Actor, id int64, confirm bool) error {
	if err := auth.Authorize(ctx, actor, r.remove); err != nil {
		return err
	}
	if err := validID(ctx, id); err != nil {
		return err
	}
	if !confirm {
		return Confirmation(r.msgConfirm)
	}
	if err := r.repo.Delete(ctx, actor.Token(), id); err != nil {
		return err
	}
	toast.Success(ctx, r.msgDeleted)
	return nil
}

func validID(ctx context.Context, id int64) error {
	if id > 0 {
		return nil
	}
	err := domain.Invalid("Identificador inválido")
	toast.Error(ctx, err.Error())
	return err
}

// ConfirmationError la operación destructiva necesita ?confirm=true.
// errors.Is(err, domain.ErrConfirmationRequired) es verdadero.
type ConfirmationError struct{ Prompt string }

func (e *ConfirmationError) Error() string { return e.Prompt }

// Is enlaza con domain.ErrConfirmationRequired.
func (e *ConfirmationError) Is(target error) bool { return target == domain.ErrConfirmationRequired }

// Confirmation construye el error con la pregunta a mostrar.
func Confirmation(prompt string) error {
	if prompt == "" {
		prompt = "¿Estás seguro de que deseas eliminar este elemento?"
	}
	return &ConfirmationError{Prompt: prompt}
}

// wrap agrega contexto al error sin perder el sentinel ni el *APIError.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
