package users

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
)

// Handler serves POST /users and GET /users/me.
type Handler struct {
	svc    *Service
	tokens middlewares.TokenResolver
}

func NewHandler(svc *Service, tokens middlewares.TokenResolver) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.POST("/users", h.create)
	r.GET("/users/me", h.me, middlewares.Auth(h.tokens))
}

type createRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) create(c internal.Context) error {
	var req createRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	u, err := h.svc.Register(c, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, u.Response())
}

func (h *Handler) me(c internal.Context) error {
	u, err := h.svc.Get(c, middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUnauthorized(middlewares.MessageUnauthorized)
		}
		return err
	}
	return c.JSON(http.StatusOK, u.Response())
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrMissingEmail):
		return internal.ErrBadRequest("Missing email", internal.WithError(err))
	case errors.Is(err, ErrMissingPassword):
		return internal.ErrBadRequest("Missing password", internal.WithError(err))
	case errors.Is(err, ErrAlreadyExists):
		return internal.ErrBadRequest("Already exists", internal.WithError(err))
	}
	return err
}
