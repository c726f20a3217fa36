package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type brokenSnapshot struct{ *repository.MemorySnapshot }

func (brokenSnapshot) Flush(context.Context, model.RoomTable) error {
	return errors.New("disk full")
}

func newTestHandler(t *testing.T, snap repository.Snapshotter, opts Options) http.Handler {
	t.Helper()
	table := model.RoomTable{"A101": {}, "B202": {}}
	logger := zaptest.NewLogger(t)
	svc := service.NewBookingService(repository.NewReservationStore(table), snap, nil, logger)
	return NewHandler(protocol.NewDispatcher(svc, logger), opts, NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst), logger)
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, protocol.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp protocol.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestCommandEndpointScenario(t *testing.T) {
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{})

	rec, resp := post(t, h, `{"type":"REQ_BOOK","room_id":"A101","user":"alice","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, protocol.ResponseConfirm, resp.Type)
	assert.Equal(t, "A101", resp.RoomID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	_, resp = post(t, h, `{"type":"REQ_BOOK","room_id":"A101","user":"bob","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	assert.Equal(t, protocol.ResponseError, resp.Type)
	assert.Equal(t, "Conflito de horário", resp.Error)

	_, resp = post(t, h, `{"type":"REQ_CHECK","room_id":"A101","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	assert.Equal(t, protocol.StatusUnavailable, resp.Status)

	_, resp = post(t, h, `{"type":"REQ_CANCEL","room_id":"A101","user":"alice","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	assert.Equal(t, protocol.ResponseCancel, resp.Type)
	assert.Equal(t, "cancelled", resp.Status)

	_, resp = post(t, h, `{"type":"REQ_LIST"}`)
	assert.Equal(t, []any{"A101", "B202"}, resp.Rooms)
}

func TestCommandEndpointErrors(t *testing.T) {
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{})

	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"unparseable", `{not json`, http.StatusBadRequest, "Requisição inválida"},
		{"missing fields", `{"type":"REQ_BOOK","room_id":"A101"}`, http.StatusBadRequest, "Requisição inválida"},
		{"unknown type", `{"type":"REQ_FLY"}`, http.StatusOK, "Tipo de mensagem desconhecido"},
		{"unknown room", `{"type":"REQ_CHECK","room_id":"ZZZ","date":"2024-05-01","time_slot":"08:00-09:30"}`, http.StatusOK, "Sala inexistente"},
		{"invalid slot", `{"type":"REQ_BOOK","room_id":"A101","user":"a","date":"2024-05-01","time_slot":"07:00-08:00"}`, http.StatusOK, "Horário inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := post(t, h, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, protocol.ResponseError, resp.Type)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

func TestCommandEndpointPersistenceFailure(t *testing.T) {
	h := newTestHandler(t, brokenSnapshot{repository.NewMemorySnapshot(nil)}, Options{})

	rec, resp := post(t, h, `{"type":"REQ_BOOK","room_id":"A101","user":"alice","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Falha ao salvar reservas", resp.Error)
}

func TestRoomsEndpoint(t *testing.T) {
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{})
	post(t, h, `{"type":"REQ_BOOK","room_id":"A101","user":"alice","date":"2024-05-01","time_slot":"08:00-09:30"}`)
	post(t, h, `{"type":"REQ_BOOK","room_id":"A101","user":"bob","date":"2024-05-02","time_slot":"08:00-09:30"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salas?date=2024-05-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rooms model.RoomTable `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, model.RoomTable{
		"A101": {{User: "bob", Date: "2024-05-02", TimeSlot: "08:00-09:30"}},
		"B202": {},
	}, body.Rooms)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salas?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metric 1\n"))
	})
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{Metrics: metrics})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "metric 1\n", rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{AllowedOrigins: []string{"https://app.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitedHandler(t *testing.T) {
	h := newTestHandler(t, repository.NewMemorySnapshot(model.RoomTable{}), Options{RateLimitRPS: 0.001, RateLimitBurst: 1})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestServerGracefulShutdown(t *testing.T) {
	logger := zaptest.NewLogger(t)
	svc := service.NewBookingService(repository.NewReservationStore(model.RoomTable{"A101": {}}), repository.NewMemorySnapshot(nil), nil, logger)
	srv := NewServer(protocol.NewDispatcher(svc, logger), Options{}, logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
