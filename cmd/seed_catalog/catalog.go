package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// Columnas del CSV (la primera fila es cabecera y se ignora):
//
//	tipo,nombre,descripcion,categoria,precio,stock,marca,modelo,color
//
// tipo es "categoria" o "producto". Las columnas de producto se ignoran en
// las filas de categoría.
const columns = 9

type productRow struct {
	line      int
	categoria string
	product   entity.Product
}

type catalog struct {
	categories []entity.Category
	products   []productRow
}

// decodeInput devuelve un lector UTF-8. Un archivo que no es UTF-8 válido se
// interpreta como ISO-8859-1 (exportaciones de Excel en español).
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parseCatalog(r io.Reader) (*catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	out := &catalog{}
	seen := map[string]bool{}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		for len(rec) < columns {
			rec = append(rec, "")
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if rec[1] == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}

		switch strings.ToLower(rec[0]) {
		case "categoria", "categoría":
			key := strings.ToLower(rec[1])
			if seen[key] {
				continue
			}
			seen[key] = true
			out.categories = append(out.categories, entity.Category{Nombre: rec[1], Descripcion: rec[2]})
		case "producto":
			p, err := parseProduct(rec)
			if err != nil {
				return nil, fmt.Errorf("línea %d: %w", line, err)
			}
			out.products = append(out.products, productRow{line: line, categoria: rec[3], product: p})
		default:
			return nil, fmt.Errorf("línea %d: tipo desconocido %q", line, rec[0])
		}
	}
	return out, nil
}

func parseProduct(rec []string) (entity.Product, error) {
	if rec[3] == "" {
		return entity.Product{}, errors.New("producto sin categoría")
	}
	precio, err := decimal.NewFromString(strings.ReplaceAll(rec[4], ",", "."))
	if err != nil || !precio.IsPositive() {
		return entity.Product{}, fmt.Errorf("precio inválido %q", rec[4])
	}
	stock := 0
	if rec[5] != "" {
		stock, err = strconv.Atoi(rec[5])
		if err != nil || stock < 0 {
			return entity.Product{}, fmt.Errorf("stock inválido %q", rec[5])
		}
	}
	return entity.Product{
		Nombre:      rec[1],
		Descripcion: rec[2],
		Precio:      precio.Round(2),
		Stock:       stock,
		Marca:       rec[6],
		Modelo:      rec[7],
		Color:       rec[8],
	}, nil
}
