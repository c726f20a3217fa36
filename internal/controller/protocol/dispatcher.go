package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/service"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Engine is the subset of the booking service the dispatcher drives.
type Engine interface {
	ListRoomNames(ctx context.Context) []string
	ListAllReservations(ctx context.Context, date string) model.RoomTable
	CheckAvailability(ctx context.Context, roomID, date, timeSlot string) (model.Availability, error)
	BookRoom(ctx context.Context, roomID, user, date, timeSlot string) (service.Confirmation, error)
	CancelReservation(ctx context.Context, roomID, user, date, timeSlot string) (service.Cancellation, error)
}

// Dispatcher turns requests into engine calls.
type Dispatcher struct {
	engine Engine
	logger *zap.Logger
}

func NewDispatcher(engine Engine, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{engine: engine, logger: logger}
}

// Decode parses a JSON request body. Any parse failure wraps service.ErrMalformedInput.
func Decode(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", service.ErrMalformedInput, err)
	}
	return req, nil
}

// Handle executes req. The returned Response is always ready to send; err is
// the underlying failure (nil on success) so transports can pick a status code.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (Response, error) {
	resp, err := d.handle(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrPersistenceFailure) {
			d.logger.Error("Request failed", zap.String("type", string(req.Type)), zap.Error(err))
		} else {
			d.logger.Debug("Request rejected", zap.String("type", string(req.Type)), zap.Error(err))
		}
		return ErrorResponse(err), err
	}
	return resp, nil
}

// ErrorResponse builds the RES_ERROR envelope for err
func ErrorResponse(err error) Response {
	return Response{Type: ResponseError, Error: service.ErrorMessage(err)}
}

func (d *Dispatcher) handle(ctx context.Context, req Request) (Response, error) {
	switch req.Type {
	case RequestList:
		return Response{Type: ResponseList, Rooms: d.engine.ListRoomNames(ctx)}, nil

	case RequestListAll:
		if req.Date != "" {
			if err := ValidateDate(req.Date); err != nil {
				return Response{}, err
			}
		}
		return Response{Type: ResponseListAll, Rooms: d.engine.ListAllReservations(ctx, req.Date)}, nil

	case RequestCheck:
		if err := requireFields(req, "room_id", "date", "time_slot"); err != nil {
			return Response{}, err
		}
		availability, err := d.engine.CheckAvailability(ctx, req.RoomID, req.Date, req.TimeSlot)
		if err != nil {
			return Response{}, err
		}
		status := StatusAvailable
		if availability == model.AvailabilityUnavailable {
			status = StatusUnavailable
		}
		return Response{Type: ResponseStatus, Status: status}, nil

	case RequestBook:
		if err := requireFields(req, "room_id", "user", "date", "time_slot"); err != nil {
			return Response{}, err
		}
		confirmation, err := d.engine.BookRoom(ctx, req.RoomID, req.User, req.Date, req.TimeSlot)
		if err != nil {
			return Response{}, err
		}
		return Response{Type: ResponseConfirm, RoomID: confirmation.RoomID, Status: string(confirmation.Status)}, nil

	case RequestCancel:
		if err := requireFields(req, "room_id", "user", "date", "time_slot"); err != nil {
			return Response{}, err
		}
		cancellation, err := d.engine.CancelReservation(ctx, req.RoomID, req.User, req.Date, req.TimeSlot)
		if err != nil {
			return Response{}, err
		}
		return Response{Type: ResponseCancel, Status: string(cancellation.Status)}, nil

	default:
		return Response{}, fmt.Errorf("%w: %q", service.ErrUnknownCommand, req.Type)
	}
}

func requireFields(req Request, fields ...string) error {
	var missing []string
	for _, field := range fields {
		var value string
		switch field {
		case "room_id":
			value = req.RoomID
		case "user":
			value = req.User
		case "date":
			value = req.Date
		case "time_slot":
			value = req.TimeSlot
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", service.ErrMalformedInput, strings.Join(missing, ", "))
	}
	return ValidateDate(req.Date)
}

// ValidateDate reports ErrMalformedInput unless date is YYYY-MM-DD.
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", service.ErrMalformedInput, date)
	}
	return nil
}

// Ensure the concrete service satisfies Engine.
var _ Engine = (*service.BookingService)(nil)
