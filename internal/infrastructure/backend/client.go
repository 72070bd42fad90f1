// Package backend implementa los puertos de internal/domain/repository sobre la
// API REST remota (JSON + Bearer token).
//
// Toda falla HTTP se convierte aquí en un *APIError con un mensaje listo para
// el usuario y se publica como toast antes de devolverse. No hay reintentos:
// cada falla es terminal para esa llamada.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-admin/internal/application/toast"
	"github.com/jhoicas/Inventario-admin/internal/domain"
	"github.com/jhoicas/Inventario-admin/pkg/logger"
)

// Mensajes fijos por código de estado. No dependen del cuerpo de la respuesta.
const (
	MsgUnauthenticated  = "No autenticado. Por favor inicia sesión nuevamente"
	MsgForbidden        = "No tienes permisos para acceder a este recurso"
	MsgMethodNotAllowed = "Método no permitido. Este endpoint no está disponible"
	MsgNetwork          = "Error de conexión con el servidor"
)

const maxBodyBytes = 4 << 20

// ErrorKind clasificación de la falla.
type ErrorKind string

// Tipos de falla.
const (
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindForbidden        ErrorKind = "forbidden"
	KindValidation       ErrorKind = "validation"
	KindMethodNotAllowed ErrorKind = "method_not_allowed"
	KindBackend          ErrorKind = "backend"
	KindNetwork          ErrorKind = "network"
)

var kindSentinels = map[ErrorKind]error{
	KindUnauthenticated:  domain.ErrUnauthenticated,
	KindForbidden:        domain.ErrForbidden,
	KindValidation:       domain.ErrValidation,
	KindMethodNotAllowed: domain.ErrMethodNotAllowed,
	KindBackend:          domain.ErrBackend,
	KindNetwork:          domain.ErrNetwork,
}

// APIError falla de una llamada al backend. Message es el texto para el usuario.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap permite errors.Is contra los errores de dominio y la causa original.
func (e *APIError) Unwrap() []error {
	out := []error{kindSentinels[e.Kind]}
	if e.cause != nil {
		out = append(out, e.cause)
	}
	return out
}

// Client cliente HTTP del backend. Es seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. timeout 0 deja el comportamiento por defecto de net/http.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL origen configurado del backend.
func (c *Client) BaseURL() string { return c.baseURL }

// call describe una petición al backend.
type call struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// response cuerpo crudo de una respuesta 2xx.
type response struct {
	status      int
	contentType string
	disposition string
	body        []byte
}

// do ejecuta la llamada, clasifica la respuesta y publica el toast en caso de error.
func (c *Client) do(ctx context.Context, in call) (*response, error) {
	resp, err := c.send(ctx, in)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			apiErr = &APIError{Kind: KindNetwork, Message: MsgNetwork, cause: err}
		}
		c.log.Warn().
			Str("method", in.method).
			Str("path", in.path).
			Int("status", apiErr.Status).
			Str("kind", string(apiErr.Kind)).
			Msg("API Error: " + apiErr.Message)
		toast.Error(ctx, apiErr.Message)
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, in call) (*response, error) {
	fullURL := c.baseURL + in.path
	if len(in.query) > 0 {
		fullURL += "?" + in.query.Encode()
	}

	tokenState := "missing"
	if in.token != "" {
		tokenState = "present"
	}
	c.log.Debug().Str("path", fullURL).Str("method", in.method).Str("token", tokenState).Msg("API Call")

	var body io.Reader
	if in.method != http.MethodGet && in.method != http.MethodDelete && in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &response{
			status:      resp.StatusCode,
			contentType: resp.Header.Get("Content-Type"),
			disposition: resp.Header.Get("Content-Disposition"),
			body:        raw,
		}, nil
	}
	return nil, classify(resp.StatusCode, raw)
}

// classify traduce una respuesta no 2xx a *APIError.
func classify(status int, raw []byte) *APIError {
	switch status {
	case http.StatusForbidden:
		return &APIError{Status: status, Kind: KindForbidden, Message: MsgForbidden}
	case http.StatusMethodNotAllowed:
		return &APIError{Status: status, Kind: KindMethodNotAllowed, Message: MsgMethodNotAllowed}
	case http.StatusUnauthorized:
		return &APIError{Status: status, Kind: KindUnauthenticated, Message: MsgUnauthenticated}
	}

	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return &APIError{
			Status:  status,
			Kind:    KindBackend,
			Message: fmt.Sprintf("Respuesta inválida del servidor (HTTP %d)", status),
		}
	}

	if status == http.StatusBadRequest {
		if msg, ok := aggregateValidation(trimmed); ok {
			return &APIError{Status: status, Kind: KindValidation, Message: msg}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		compact.Reset()
		compact.Write(trimmed)
	}
	kind := KindBackend
	if status == http.StatusBadRequest {
		kind = KindValidation
	}
	return &APIError{Status: status, Kind: kind, Message: compact.String()}
}

// aggregateValidation une los mensajes de un cuerpo 400 campo → mensaje(s).
// Respeta el orden de los campos en el documento: arrays unidos con espacio,
// escalares convertidos a texto, campos unidos con espacio.
func aggregateValidation(raw []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return "", false
	}
	var parts []string
	for dec.More() {
		if _, err := dec.Token(); err != nil { // clave
			return "", false
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return "", false
		}
		parts = append(parts, stringify(value, true))
	}
	return strings.Join(parts, " "), true
}

// stringify convierte un valor JSON a texto. top indica si es el valor del
// campo (null → "null") o un elemento de array (null → "").
func stringify(v any, top bool) string {
	switch t := v.(type) {
	case nil:
		if top {
			return "null"
		}
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		items := make([]string, len(t))
		for i, it := range t {
			items[i] = stringify(it, false)
		}
		if top {
			return strings.Join(items, " ")
		}
		return strings.Join(items, ",")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// getJSON ejecuta la llamada y devuelve el cuerpo crudo de la respuesta 2xx.
func (c *Client) getJSON(ctx context.Context, in call) ([]byte, error) {
	resp, err := c.do(ctx, in)
	if err != nil {
		return nil, err
	}
	return resp.body, nil
}

// deleteResource ejecuta un DELETE; éxito no decodifica el cuerpo.
func (c *Client) deleteResource(ctx context.Context, path, token string) error {
	_, err := c.do(ctx, call{method: http.MethodDelete, path: path, token: token})
	return err
}

// decodeFailure registra y notifica un cuerpo 2xx que no se pudo interpretar.
func (c *Client) decodeFailure(ctx context.Context, path string, err error) error {
	apiErr := &APIError{Kind: KindNetwork, Message: MsgNetwork, cause: fmt.Errorf("backend: decodificar %s: %w", path, err)}
	c.log.Warn().Err(err).Str("path", path).Msg("API Error: respuesta ilegible")
	toast.Error(ctx, apiErr.Message)
	return apiErr
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}
