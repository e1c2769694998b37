// Package internal holds the HTTP core of filevault: the App, the request
// Context handed to handlers, the Router adapter over chi, typed HTTP errors
// and the server runtime with graceful shutdown.
//
// Domain packages declare routes by implementing Handler:
//
//	func (h *Handler) Routes(r internal.Router) {
//	    r.GET("/files/{id}", h.get, middlewares.Auth(h.tokens))
//	}
//
// Handlers return errors instead of writing them. An *HTTPError carries the
// status code and the user-facing message; anything else is rendered by the
// configured ErrorHandler as an internal error.
//
// Context embeds context.Context, so it can be passed straight into
// repositories and services:
//
//	func (h *Handler) get(c internal.Context) error {
//	    f, err := h.svc.Get(c, middlewares.UserID(c), c.Param("id"))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, f)
//	}
package internal
