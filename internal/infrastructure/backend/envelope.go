package backend

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
)

// envelope cubre todas las formas de lista que devuelve el backend:
//
//	{ "datos": { "content": [...], "totalPages": n, "totalElements": n } }
//	{ "data":  { "content": [...], ... } }
//	{ "content": [...], "totalPages": n, "totalElements": n }
//	{ "datos": [...] } | { "data": [...] } | [...]
type envelope struct {
	Datos         json.RawMessage `json:"datos"`
	Data          json.RawMessage `json:"data"`
	Content       json.RawMessage `json:"content"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int64           `json:"totalElements"`
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// decodePage normaliza cualquier forma de lista a entity.Page[T].
// W es el tipo de cable y conv lo traduce al tipo de dominio.
func decodePage[W any, T any](raw []byte, conv func(W) (T, error)) (*entity.Page[T], error) {
	raw = bytes.TrimSpace(raw)
	if !present(raw) {
		return &entity.Page[T]{Items: []T{}}, nil
	}

	switch raw[0] {
	case '[':
		items, err := decodeItems(raw, conv)
		if err != nil {
			return nil, err
		}
		return &entity.Page[T]{Items: items, TotalPages: pagesFor(len(items)), TotalElements: int64(len(items))}, nil
	case '{':
	default:
		return nil, fmt.Errorf("lista con forma inesperada: %.40s", raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch {
	case present(env.Datos):
		return decodePage(env.Datos, conv)
	case present(env.Data):
		return decodePage(env.Data, conv)
	case present(env.Content):
		items, err := decodeItems(env.Content, conv)
		if err != nil {
			return nil, err
		}
		page := &entity.Page[T]{Items: items, TotalPages: env.TotalPages, TotalElements: env.TotalElements}
		if page.TotalElements == 0 && len(items) > 0 {
			page.TotalElements = int64(len(items))
		}
		if page.TotalPages == 0 {
			page.TotalPages = pagesFor(len(items))
		}
		return page, nil
	}
	return &entity.Page[T]{Items: []T{}, TotalPages: env.TotalPages, TotalElements: env.TotalElements}, nil
}

func decodeItems[W any, T any](raw []byte, conv func(W) (T, error)) ([]T, error) {
	var wires []W
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(wires))
	for _, w := range wires {
		it, err := conv(w)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func pagesFor(n int) int {
	if n == 0 {
		return 0
	}
	return 1
}

// decodeOne decodifica un objeto suelto, desenvolviendo {datos:{...}} o {data:{...}}.
func decodeOne[W any, T any](raw []byte, conv func(W) (T, error)) (T, error) {
	var zero T
	raw = bytes.TrimSpace(raw)
	if !present(raw) {
		return zero, fmt.Errorf("respuesta vacía")
	}
	var env struct {
		Datos json.RawMessage `json:"datos"`
		Data  json.RawMessage `json:"data"`
	}
	if raw[0] == '{' && json.Unmarshal(raw, &env) == nil {
		if isObject(env.Datos) {
			raw = env.Datos
		} else if isObject(env.Data) {
			raw = env.Data
		}
	}
	var w W
	if err := json.Unmarshal(raw, &w); err != nil {
		return zero, err
	}
	return conv(w)
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// identity para tipos que ya tienen forma de dominio.
func identity[T any](v T) (T, error) { return v, nil }
