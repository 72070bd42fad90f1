// Package auth mantiene la sesión del usuario: token, usuario derivado y su
// persistencia en el Storage de la sesión.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Inventario-admin/pkg/jwt"
)

// Mensajes de resultado.
const (
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgLoginFailed        = "Error en login"
	MsgRegisterFailed     = "Error en el registro"
)

// Result resultado de SignIn/Register. Nunca se devuelve como error de Go.
type Result struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Data    *entity.RegisteredUser `json:"data,omitempty"`
}

// userData forma persistida bajo KeyUserData.
type userData struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
}

// Session contexto de autenticación de un cliente. No es seguro para uso
// concurrente: se crea una por petición sobre el Storage de la sesión.
type Session struct {
	store Storage
	repo  repository.AuthRepository

	token string
	user  *entity.User
}

// NewSession construye la sesión sin estado; llamar Bootstrap para rehidratarla.
func NewSession(store Storage, repo repository.AuthRepository) *Session {
	return &Session{store: store, repo: repo}
}

// IsAuthenticated verdadero si y solo si hay token.
func (s *Session) IsAuthenticated() bool { return s.token != "" }

// Token token vigente o vacío.
func (s *Session) Token() string { return s.token }

// User usuario derivado; nil sin sesión.
func (s *Session) User() *entity.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role rol del usuario; vacío sin sesión.
func (s *Session) Role() entity.Role {
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Snapshot token + usuario actuales.
func (s *Session) Snapshot() entity.Session {
	return entity.Session{Token: s.token, User: s.User()}
}

// Bootstrap rehidrata la sesión desde el Storage. Si hay token se reconstruye el
// usuario desde userData o, en su defecto, desde el payload del JWT (sin
// verificar firma). Cualquier dato ilegible limpia la sesión.
func (s *Session) Bootstrap(ctx context.Context) error {
	s.token, s.user = "", nil

	token, err := s.get(ctx, KeyToken)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	role, err := s.get(ctx, KeyUserRole)
	if err != nil {
		return err
	}
	raw, err := s.get(ctx, KeyUserData)
	if err != nil {
		return err
	}

	user, ok := rebuildUser(token, raw, role)
	if !ok {
		return s.SignOut(ctx)
	}
	s.token, s.user = token, user
	return nil
}

func rebuildUser(token, raw, role string) (*entity.User, bool) {
	if raw != "" {
		var d userData
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, false
		}
		return &entity.User{ID: d.ID, Nombre: d.Nombre, Email: d.Email, Role: entity.RoleOrDefault(role)}, true
	}

	claims, err := pkgjwt.Decode(token)
	if err != nil {
		return nil, false
	}
	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	if role == "" {
		role = claims.Role
	}
	return &entity.User{
		ID:     claims.Subject,
		Nombre: entity.DisplayName(claims.Email),
		Email:  email,
		Role:   entity.RoleOrDefault(role),
	}, true
}

// SignIn autentica contra el backend y persiste token, rol y datos del usuario.
func (s *Session) SignIn(ctx context.Context, email, password string) Result {
	res, err := s.repo.Login(ctx, entity.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return failure(err, MsgLoginFailed)
	}
	if res == nil || res.Token == "" {
		return Result{Error: MsgInvalidCredentials}
	}

	role := entity.RoleOrDefault(res.Role)
	d := userData{ID: res.ID, Email: res.Email, Nombre: entity.DisplayName(res.Email)}
	payload, err := json.Marshal(d)
	if err != nil {
		return failure(err, MsgLoginFailed)
	}
	// El carrito de una sesión anterior no pasa al nuevo usuario.
	if err := s.store.Remove(ctx, KeyCart); err != nil {
		return failure(err, MsgLoginFailed)
	}
	for _, kv := range [][2]string{
		{KeyToken, res.Token},
		{KeyUserRole, string(role)},
		{KeyUserData, string(payload)},
	} {
		if err := s.store.Set(ctx, kv[0], kv[1]); err != nil {
			return failure(err, MsgLoginFailed)
		}
	}

	s.token = res.Token
	s.user = &entity.User{ID: d.ID, Nombre: d.Nombre, Email: d.Email, Role: role}
	return Result{Success: true}
}

// SignOut borra las claves del usuario y su carrito y limpia la memoria.
// La memoria se limpia aunque el Storage falle.
func (s *Session) SignOut(ctx context.Context) error {
	s.token, s.user = "", nil
	var errs []error
	for _, k := range []string{KeyToken, KeyUserRole, KeyUserData, KeyCart} {
		if err := s.store.Remove(ctx, k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Register crea la cuenta; no inicia sesión.
func (s *Session) Register(ctx context.Context, in entity.Registration) Result {
	if in.Role == "" {
		in.Role = entity.RoleUser
	}
	res, err := s.repo.Register(ctx, in)
	if err != nil {
		return failure(err, MsgRegisterFailed)
	}
	if res == nil || res.ID == "" {
		return Result{Error: MsgRegisterFailed}
	}
	return Result{Success: true, Data: res}
}

func (s *Session) get(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNoValue) {
		return "", nil
	}
	return v, err
}

func failure(err error, fallback string) Result {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return Result{Error: msg}
}
