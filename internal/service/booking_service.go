package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"go.uber.org/zap"
)

// Confirmation is the result of a successful booking
type Confirmation struct {
	RoomID string
	Status model.ReservationStatus
}

// Cancellation is the result of a successful cancellation
type Cancellation struct {
	Status model.ReservationStatus
}

// BookingService enforces the reservation invariants over a ReservationStore.
//
// Invariant: all booking and cancel operations across all rooms are mutually
// exclusive. mu is held from the conflict check through the flush, so a
// per-room lock may replace it as long as that atomicity is kept per room.
type BookingService struct {
	mu        sync.Mutex
	store     *repository.ReservationStore
	snapshots repository.Snapshotter
	metrics   MetricsRecorder
	logger    *zap.Logger
}

func NewBookingService(
	store *repository.ReservationStore,
	snapshots repository.Snapshotter,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *BookingService {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		store:     store,
		snapshots: snapshots,
		metrics:   metrics,
		logger:    logger,
	}
}

// ListRoomNames returns every room key in sorted order
func (s *BookingService) ListRoomNames(ctx context.Context) []string {
	defer s.observe(ctx, "list_rooms", time.Now(), nil)
	return s.store.RoomNames()
}

// ListAllReservations returns the whole table, filtered by exact date when date is set
func (s *BookingService) ListAllReservations(ctx context.Context, date string) model.RoomTable {
	defer s.observe(ctx, "list_all", time.Now(), nil)

	table := s.store.All()
	if date == "" {
		return table
	}
	return table.FilterByDate(date)
}

// CheckAvailability reports whether (date, timeSlot) is free in room.
// The slot is not validated against the catalog.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID, date, timeSlot string) (availability model.Availability, err error) {
	defer s.observe(ctx, "check", time.Now(), &err)

	if !s.store.HasRoom(roomID) {
		return "", fmt.Errorf("check %q: %w", roomID, ErrRoomNotFound)
	}
	if s.store.Occupied(roomID, date, timeSlot) {
		return model.AvailabilityUnavailable, nil
	}
	return model.AvailabilityAvailable, nil
}

// RoomSchedule lists every catalog slot of room on date with its holder, if any
func (s *BookingService) RoomSchedule(ctx context.Context, roomID, date string) (schedule []model.SlotOccupancy, err error) {
	defer s.observe(ctx, "schedule", time.Now(), &err)

	reservations, ok := s.store.Reservations(roomID)
	if !ok {
		return nil, fmt.Errorf("schedule %q: %w", roomID, ErrRoomNotFound)
	}

	holders := make(map[string]string, len(reservations))
	for _, r := range reservations {
		if r.Date == date {
			holders[r.TimeSlot] = r.User
		}
	}

	for _, slot := range model.Slots() {
		user, taken := holders[slot]
		schedule = append(schedule, model.SlotOccupancy{TimeSlot: slot, Free: !taken, User: user})
	}
	return schedule, nil
}

// BookRoom reserves (date, timeSlot) in room for user
func (s *BookingService) BookRoom(ctx context.Context, roomID, user, date, timeSlot string) (confirmation Confirmation, err error) {
	defer s.observe(ctx, "book", time.Now(), &err)

	if !s.store.HasRoom(roomID) {
		return Confirmation{}, fmt.Errorf("book %q: %w", roomID, ErrRoomNotFound)
	}
	if !model.IsValidSlot(timeSlot) {
		return Confirmation{}, fmt.Errorf("book %q at %q: %w", roomID, timeSlot, ErrInvalidSlot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, _ := s.store.Reservations(roomID)
	reservation := model.Reservation{User: user, Date: date, TimeSlot: timeSlot}

	if !s.store.Add(roomID, reservation) {
		return Confirmation{}, fmt.Errorf("book %q on %s at %s: %w", roomID, date, timeSlot, ErrSlotConflict)
	}

	if err := s.flush(ctx); err != nil {
		s.store.SetReservations(roomID, previous)
		return Confirmation{}, err
	}

	s.logger.Info("Room booked",
		zap.String("room_id", roomID),
		zap.String("user", user),
		zap.String("date", date),
		zap.String("time_slot", timeSlot),
	)

	return Confirmation{RoomID: roomID, Status: model.ReservationStatusConfirmed}, nil
}

// CancelReservation removes the first reservation in room matching (user, date, timeSlot)
func (s *BookingService) CancelReservation(ctx context.Context, roomID, user, date, timeSlot string) (cancellation Cancellation, err error) {
	defer s.observe(ctx, "cancel", time.Now(), &err)

	if !s.store.HasRoom(roomID) {
		return Cancellation{}, fmt.Errorf("cancel %q: %w", roomID, ErrRoomNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, _ := s.store.Reservations(roomID)
	reservation := model.Reservation{User: user, Date: date, TimeSlot: timeSlot}

	if !s.store.Remove(roomID, reservation) {
		return Cancellation{}, fmt.Errorf("cancel %q for %s on %s at %s: %w", roomID, user, date, timeSlot, ErrReservationNotFound)
	}

	if err := s.flush(ctx); err != nil {
		s.store.SetReservations(roomID, previous)
		return Cancellation{}, err
	}

	s.logger.Info("Reservation cancelled",
		zap.String("room_id", roomID),
		zap.String("user", user),
		zap.String("date", date),
		zap.String("time_slot", timeSlot),
	)

	return Cancellation{Status: model.ReservationStatusCancelled}, nil
}

// flush writes the full table. Callers must hold s.mu.
func (s *BookingService) flush(ctx context.Context) error {
	start := time.Now()
	err := s.snapshots.Flush(ctx, s.store.All())
	s.metrics.Observe(ctx, "flush", err == nil, time.Since(start))
	if err != nil {
		s.logger.Error("Failed to flush reservations", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return nil
}

// Resync flushes the in-memory table again. Used when the durable copy is
// found to have drifted.
func (s *BookingService) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush(ctx)
}

// Snapshot returns a copy of the in-memory table taken under the engine lock,
// so it never observes a mutation whose flush is still pending.
func (s *BookingService) Snapshot() model.RoomTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

func (s *BookingService) observe(ctx context.Context, operation string, start time.Time, err *error) {
	success := err == nil || *err == nil
	s.metrics.Observe(ctx, operation, success, time.Since(start))
}
