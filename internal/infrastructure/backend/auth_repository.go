package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/Inventario-admin/internal/domain/entity"
	"github.com/jhoicas/Inventario-admin/internal/domain/repository"
)

var _ repository.AuthRepository = (*AuthRepository)(nil)

// AuthRepository endpoints públicos /v1/auth/*.
type AuthRepository struct {
	c *Client
}

// NewAuthRepository construye el repositorio.
func NewAuthRepository(c *Client) *AuthRepository {
	return &AuthRepository{c: c}
}

type loginWire struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	ID          json.RawMessage `json:"id"`
	UserID      json.RawMessage `json:"userId"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Rol         string          `json:"rol"`
}

// Login POST /v1/auth/login.
func (r *AuthRepository) Login(ctx context.Context, in entity.Credentials) (*entity.LoginResult, error) {
	path := "/v1/auth/login"
	body, err := r.c.getJSON(ctx, call{method: http.MethodPost, path: path, body: in})
	if err != nil {
		return nil, err
	}
	out, err := decodeOne(body, func(w loginWire) (*entity.LoginResult, error) {
		out := &entity.LoginResult{
			Token: w.Token,
			Email: w.Email,
			Role:  w.Role,
		}
		if out.Token == "" {
			out.Token = w.AccessToken
		}
		if out.Role == "" {
			out.Role = w.Rol
		}
		out.ID = rawText(w.ID)
		if out.ID == "" {
			out.ID = rawText(w.UserID)
		}
		return out, nil
	})
	if err != nil {
		return nil, r.c.decodeFailure(ctx, path, err)
	}
	return out, nil
}

type registeredWire struct {
	ID     json.RawMessage `json:"id"`
	Nombre string          `json:"nombre"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
}

// Register POST /v1/auth/register.
func (r *AuthRepository) Register(ctx context.Context, in entity.Registration) (*entity.RegisteredUser, error) {
	path := "/v1/auth/register"
	body, err := r.c.getJSON(ctx, call{method: http.MethodPost, path: path, body: in})
	if err != nil {
		return nil, err
	}
	out, err := decodeOne(body, func(w registeredWire) (*entity.RegisteredUser, error) {
		return &entity.RegisteredUser{ID: rawText(w.ID), Nombre: w.Nombre, Email: w.Email, Role: w.Role}, nil
	})
	if err != nil {
		return nil, r.c.decodeFailure(ctx, path, err)
	}
	return out, nil
}
