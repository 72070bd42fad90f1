package usecase

import (
	"context"
	"net/mail"
	"strings"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/permission"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// CustomerUseCase página de clientes.
type CustomerUseCase struct {
	res resource[entity.Customer]
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{res: resource[entity.Customer]{
		repo:       repo,
		create:     permission.CreateCustomer,
		update:     permission.UpdateCustomer,
		remove:     permission.DeleteCustomer,
		validate:   validateCustomer,
		msgCreated: "Cliente creado",
		msgUpdated: "Cliente actualizado",
		msgDeleted: "Cliente eliminado",
		msgConfirm: "¿Estás seguro de que deseas eliminar este cliente?",
	}}
}

func validateCustomer(c *entity.Customer) error {
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Email = strings.TrimSpace(c.Email)
	switch {
	case c.Nombre == "":
		return domain.Invalid("El nombre es requerido")
	case c.Email == "":
		return domain.Invalid("El email es requerido")
	}
	// Solo la dirección desnuda: "Ana <ana@x.pe>" no es un email de cliente.
	if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
		return domain.Invalid("El email no es válido")
	}
	return nil
}

// Load lista de clientes.
func (uc *CustomerUseCase) Load(ctx context.Context, actor auth.Actor, page entity.PageRequest) *dto.CustomersView {
	return &dto.CustomersView{
		Clientes: uc.res.list(ctx, actor, page),
		Acciones: permission.Allowed(actor.Role(),
			permission.CreateCustomer, permission.UpdateCustomer, permission.DeleteCustomer),
	}
}

// Create crea el cliente y recarga.
func (uc *CustomerUseCase) Create(ctx context.Context, actor auth.Actor, page entity.PageRequest, in dto.CustomerRequest) (*dto.CustomersView, error) {
	if err := uc.res.doCreate(ctx, actor, in.ToEntity()); err != nil {
		return nil, wrap("clientes: crear", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Update actualiza el cliente y recarga.
func (uc *CustomerUseCase) Update(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, in dto.CustomerRequest) (*dto.CustomersView, error) {
	if err := uc.res.doUpdate(ctx, actor, id, in.ToEntity()); err != nil {
		return nil, wrap("clientes: actualizar", err)
	}
	return uc.Load(ctx, actor, page), nil
}

// Delete elimina el cliente y recarga.
func (uc *CustomerUseCase) Delete(ctx context.Context, actor auth.Actor, page entity.PageRequest, id int64, confirm bool) (*dto.CustomersView, error) {
	if err := uc.res.doDelete(ctx, actor, id, confirm); err != nil {
		return nil, wrap("clientes: eliminar", err)
	}
	return uc.Load(ctx, actor, page), nil
}
