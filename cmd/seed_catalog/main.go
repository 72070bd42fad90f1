// seed_catalog carga categorías y productos desde un CSV a través de la API
// REST, con las mismas reglas que el panel.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Credenciales en SEED_EMAIL y SEED_PASSWORD (usuario ADMIN). El backend se
// toma de BACKEND_URL como en el servidor.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-admin/pkg/config"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel}).Component("seed")
	decimal.MarshalJSONWithoutQuotes = true

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	cat, err := parseCatalog(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	t := toast.New()
	ctx := toast.WithToaster(context.Background(), t)
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout(), log)

	res, err := backend.NewAuthRepository(client).Login(ctx, entity.Credentials{
		Email:    os.Getenv("SEED_EMAIL"),
		Password: os.Getenv("SEED_PASSWORD"),
	})
	if err != nil || res.Token == "" {
		fmt.Fprintf(os.Stderr, "Login: %v\n", err)
		os.Exit(1)
	}

	s := &seeder{
		categories: backend.NewCategoryRepository(client),
		products:   backend.NewProductRepository(client),
		token:      res.Token,
		log:        log,
	}
	created, err := s.run(ctx, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar catálogo: %v\n", err)
		os.Exit(1)
	}
	for _, it := range t.Drain() {
		log.Warn().Str("tipo", string(it.Type)).Msg(it.Message)
	}
	log.Info().
		Int("categorias", created.categories).
		Int("productos", created.products).
		Int("omitidos", created.skipped).
		Msg("catálogo cargado")
}

type seedStats struct {
	categories int
	products   int
	skipped    int
}

type seeder struct {
	categories interface {
		List(ctx context.Context, token string, page entity.PageRequest) (*entity.Page[entity.Category], error)
		Create(ctx context.Context, token string, in *entity.Category) (*entity.Category, error)
	}
	products interface {
		Create(ctx context.Context, token string, in *entity.Product) (*entity.Product, error)
	}
	token string
	log   *logger.Logger
}

// run crea las categorías que faltan y luego los productos. Un producto que el
// backend rechaza se omite y se sigue con el resto.
func (s *seeder) run(ctx context.Context, cat *catalog) (seedStats, error) {
	var st seedStats

	existing, err := s.categories.List(ctx, s.token, entity.PageRequest{Page: 0, Size: 1000})
	if err != nil {
		return st, fmt.Errorf("listar categorías: %w", err)
	}
	ids := make(map[string]int64, len(existing.Items))
	for _, c := range existing.Items {
		ids[strings.ToLower(c.Nombre)] = c.ID
	}

	for i := range cat.categories {
		c := cat.categories[i]
		key := strings.ToLower(c.Nombre)
		if _, ok := ids[key]; ok {
			continue
		}
		out, err := s.categories.Create(ctx, s.token, &c)
		if err != nil {
			return st, fmt.Errorf("crear categoría %q: %w", c.Nombre, err)
		}
		ids[key] = out.ID
		st.categories++
	}

	for _, row := range cat.products {
		id, ok := ids[strings.ToLower(row.categoria)]
		if !ok {
			s.log.Warn().Int("linea", row.line).Str("categoria", row.categoria).Msg("categoría inexistente, producto omitido")
			st.skipped++
			continue
		}
		p := row.product
		p.CategoriaID = id
		if _, err := s.products.Create(ctx, s.token, &p); err != nil {
			s.log.Warn().Err(err).Int("linea", row.line).Str("producto", p.Nombre).Msg("producto omitido")
			st.skipped++
			continue
		}
		st.products++
	}
	return st, nil
}
