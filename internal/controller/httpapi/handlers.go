package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	dispatcher *protocol.Dispatcher
	logger     *zap.Logger
}

// command serves the POST / envelope endpoint.
func (h *handlers) command(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse(service.ErrMalformedInput))
		return
	}

	req, err := protocol.Decode(body)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse(err))
		return
	}

	resp, err := h.dispatcher.Handle(r.Context(), req)
	h.writeJSON(w, statusFor(err), resp)
}

// rooms serves GET /salas, optionally filtered by ?date=.
func (h *handlers) rooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp, err := h.dispatcher.Handle(r.Context(), protocol.Request{
		Type: protocol.RequestListAll,
		Date: r.URL.Query().Get("date"),
	})
	if err != nil {
		h.writeJSON(w, statusFor(err), resp)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"rooms": resp.Rooms})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor picks the HTTP status for a dispatcher outcome. Business
// rejections are still 200: the envelope carries RES_ERROR.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPersistenceFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}
