package api

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/planora/planora-server/internal/api/respond"
	"github.com/planora/planora-server/internal/model"
)

// writeErr maps service errors onto HTTP status codes. Anything not tagged
// with a sentinel from the model package is treated as a server fault.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
