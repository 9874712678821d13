package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
)

// AuthClient implements ports.AuthService against the backend's auth
// endpoints, through the client gate. It holds no state: token and user
// persistence belong to the session manager.
type AuthClient struct {
	client *Client
}

// NewAuthClient wraps the client gate as an auth service.
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rol      string `json:"rol"`
}

// Login exchanges credentials for a token and a user summary. A logical
// rejection (success=false, or a 401 on this call) maps to the fixed
// "Error al iniciar sesión" message; transport faults propagate unchanged.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	env, err := a.client.DoJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return "", nil, domain.NewAuthError(domain.MsgLoginFailed, err)
		}
		return "", nil, err
	}
	if !env.Success {
		return "", nil, domain.NewAuthError(domain.MsgLoginFailed, backendError(env))
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", nil, domain.NewAuthError(domain.MsgLoginFailed, err)
	}
	if data.Token == "" {
		return "", nil, domain.NewAuthError(domain.MsgLoginFailed, errors.New("response missing token"))
	}
	return data.Token, data.User, nil
}

// GetProfile fetches the full user record for the stored token.
func (a *AuthClient) GetProfile(ctx context.Context) (*domain.User, error) {
	env, err := a.client.DoJSON(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, domain.NewAuthError(domain.MsgProfileFailed, backendError(env))
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, domain.NewAuthError(domain.MsgProfileFailed, err)
	}
	return &user, nil
}

// Register creates a new user on the backend.
func (a *AuthClient) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	req := registerRequest{
		Email:    input.Email,
		Password: input.Password,
		Nombre:   input.Nombre,
		Apellido: input.Apellido,
		Rol:      input.Rol,
	}
	env, err := a.client.DoJSON(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, domain.NewAuthError(domain.MsgRegisterFailed, backendError(env))
	}

	var user domain.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, domain.NewAuthError(domain.MsgRegisterFailed, err)
	}
	return &user, nil
}

func backendError(env *Envelope) error {
	if env.Message == "" {
		return nil
	}
	return errors.New(env.Message)
}
