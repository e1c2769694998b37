package auth

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
)

// Authenticator verifies an email and password pair.
// ok is false when the credentials do not match a user.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (userID string, ok bool, err error)
}

// Handler serves GET /connect and GET /disconnect.
type Handler struct {
	tokens *Tokens
	users  Authenticator
}

// NewHandler creates the session endpoints.
func NewHandler(tokens *Tokens, users Authenticator) *Handler {
	return &Handler{tokens: tokens, users: users}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.GET("/connect", h.connect)
	r.GET("/disconnect", h.disconnect, middlewares.Auth(h.tokens))
}

type connectResponse struct {
	Token string `json:"token"`
}

func (h *Handler) connect(c internal.Context) error {
	email, password, ok := c.Request().BasicAuth()
	if !ok || email == "" {
		return internal.ErrUnauthorized(middlewares.MessageUnauthorized)
	}

	userID, ok, err := h.users.Authenticate(c, email, password)
	if err != nil {
		return err
	}
	if !ok {
		return internal.ErrUnauthorized(middlewares.MessageUnauthorized)
	}

	token, err := h.tokens.Issue(c, userID)
	if err != nil {
		return err
	}

	c.LogInfo("session opened", "user_id", userID)
	return c.JSON(http.StatusOK, connectResponse{Token: token})
}

func (h *Handler) disconnect(c internal.Context) error {
	if err := h.tokens.Revoke(c, middlewares.Token(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
