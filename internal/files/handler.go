package files

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
)

// Handler serves the /files endpoints.
type Handler struct {
	svc    *Service
	tokens middlewares.TokenResolver
}

func NewHandler(svc *Service, tokens middlewares.TokenResolver) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.Auth(h.tokens))

		r.POST("/files", h.upload)
		r.GET("/files", h.list)
		r.GET("/files/{id}", h.show)
		r.PUT("/files/{id}/publish", h.publish)
		r.PUT("/files/{id}/unpublish", h.unpublish)
	})

	r.GET("/files/{id}/data", h.content, middlewares.OptionalAuth(h.tokens))
}

type uploadRequest struct {
	Name     string    `json:"name"`
	Type     Type      `json:"type"`
	ParentID ParentRef `json:"parentId"`
	IsPublic bool      `json:"isPublic"`
	Data     string    `json:"data"`
}

func (h *Handler) upload(c internal.Context) error {
	var req uploadRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}

	f, err := h.svc.Upload(c, UploadParams{
		UserID:   middlewares.UserID(c),
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) show(c internal.Context) error {
	f, err := h.svc.Get(c, middlewares.UserID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) list(c internal.Context) error {
	var parent *ParentRef
	if raw, ok := c.Request().URL.Query()["parentId"]; ok && len(raw) > 0 {
		p := ParentRef(raw[0])
		if p.IsRoot() {
			p = Root
		}
		parent = &p
	}

	list, err := h.svc.List(c, middlewares.UserID(c), parent, internal.QueryDefault(c, "page", 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) publish(c internal.Context) error {
	return h.setPublic(c, true)
}

func (h *Handler) unpublish(c internal.Context) error {
	return h.setPublic(c, false)
}

func (h *Handler) setPublic(c internal.Context, public bool) error {
	f, err := h.svc.SetPublic(c, middlewares.UserID(c), c.Param("id"), public)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) content(c internal.Context) error {
	content, err := h.svc.Content(c, middlewares.UserID(c), c.Param("id"), c.Query("size"))
	if err != nil {
		return httpError(err)
	}
	defer content.Body.Close()

	return c.Stream(http.StatusOK, content.ContentType, content.Body)
}

var errorMessages = []struct {
	err     error
	code    int
	message string
}{
	{ErrMissingName, http.StatusBadRequest, "Missing name"},
	{ErrInvalidType, http.StatusBadRequest, "Missing or invalid type"},
	{ErrMissingData, http.StatusBadRequest, "Missing data"},
	{ErrInvalidData, http.StatusBadRequest, "Invalid data"},
	{ErrParentNotFound, http.StatusBadRequest, "Parent not found"},
	{ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
	{ErrNotFound, http.StatusNotFound, "Not found"},
	{ErrFolderHasNoData, http.StatusBadRequest, "A folder doesn't have content"},
	{ErrInvalidSize, http.StatusBadRequest, "Invalid size"},
	{ErrUnknownMIME, http.StatusInternalServerError, "Unable to determine MIME type"},
	{ErrUpdateFailed, http.StatusInternalServerError, "Failed to update the file"},
}

func httpError(err error) error {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return internal.NewHTTPError(m.code, m.message, internal.WithError(err))
		}
	}
	return err
}
