package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

// actor sesión fija para las pruebas.
type actor struct{ role entity.Role }

func (a actor) Token() string      { return "tok-" + string(a.role) }
func (a actor) Role() entity.Role  { return a.role }
func (a actor) User() *entity.User { return &entity.User{ID: "1", Email: "x@y.z", Role: a.role} }

var (
	admin = actor{role: entity.RoleAdmin}
	user  = actor{role: entity.RoleUser}
)

var _ auth.Actor = actor{}

func ctxWithToaster() (context.Context, *toast.Toaster) {
	t := toast.New()
	return toast.WithToaster(context.Background(), t), t
}

// fakeRepo CRUD en memoria que cuenta las llamadas.
type fakeRepo[T any] struct {
	mu      sync.Mutex
	items   []T
	listErr error
	err     error
	created []*T
	updated map[int64]*T
	deleted []int64
	calls   int
}

func (f *fakeRepo[T]) List(context.Context, string, entity.PageRequest) (*entity.Page[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &entity.Page[T]{Items: append([]T(nil), f.items...), TotalPages: 1, TotalElements: int64(len(f.items))}, nil
}

func (f *fakeRepo[T]) Create(_ context.Context, _ string, in *T) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return in, nil
}

func (f *fakeRepo[T]) Update(_ context.Context, _ string, id int64, in *T) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.updated == nil {
		f.updated = map[int64]*T{}
	}
	f.updated[id] = in
	return in, nil
}

func (f *fakeRepo[T]) Delete(_ context.Context, _ string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeOrders repositorio de pedidos en memoria.
type fakeOrders struct {
	mu        sync.Mutex
	orders    []entity.Order
	createErr error
	created   []*entity.NewOrder
	statuses  map[int64]entity.OrderStatus
	deleted   []int64
	// gate bloquea Create hasta que se cierre (envíos concurrentes).
	gate    chan struct{}
	entered chan struct{}
}

var _ repository.OrderRepository = (*fakeOrders)(nil)

func (f *fakeOrders) List(context.Context, string, entity.PageRequest) (*entity.Page[entity.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.Page[entity.Order]{Items: append([]entity.Order(nil), f.orders...), TotalPages: 1, TotalElements: int64(len(f.orders))}, nil
}

func (f *fakeOrders) GetByID(_ context.Context, _ string, id int64) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) Create(_ context.Context, _ string, in *entity.NewOrder) (*entity.Order, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	o := entity.Order{ID: int64(100 + len(f.created)), ClienteID: in.ClienteID, Total: in.Total, Estado: in.Estado}
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrders) Update(_ context.Context, _ string, _ int64, in *entity.Order) (*entity.Order, error) {
	return in, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ string, id int64, estado entity.OrderStatus) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = map[int64]entity.OrderStatus{}
	}
	f.statuses[id] = estado
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Estado = estado
		}
	}
	return nil, nil
}

func (f *fakeOrders) Delete(_ context.Context, _ string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeReports solo implementa la búsqueda de boletas.
type fakeReports struct {
	repository.ReportRepository
	filter entity.ReceiptFilter
	found  []entity.Order
	calls  int
}

func (f *fakeReports) SearchReceipts(_ context.Context, _ string, flt entity.ReceiptFilter, _ entity.PageRequest) (*entity.Page[entity.Order], error) {
	f.calls++
	f.filter = flt
	return &entity.Page[entity.Order]{Items: f.found, TotalPages: 1, TotalElements: int64(len(f.found))}, nil
}

// fakeRenderer devuelve un PDF de mentira y recuerda el pedido.
type fakeRenderer struct{ last *entity.Order }

func (f *fakeRenderer) Render(o *entity.Order) ([]byte, error) {
	f.last = o
	return []byte("%PDF-1.4"), nil
}

// memStorage Storage mínimo para el carrito.
type memStorage struct {
	mu      sync.Mutex
	data    map[string]string
	failSet error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string]string{}} }

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", auth.ErrNoValue
	}
	return v, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func messages(t *toast.Toaster) []string {
	var out []string
	for _, it := range t.Items() {
		out = append(out, it.Message)
	}
	return out
}
