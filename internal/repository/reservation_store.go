package repository

import (
	"sync"

	"github.com/MauroGomes09/Unireserva/internal/model"
)

// ReservationStore holds the authoritative room table in memory.
//
// The RWMutex only keeps the map itself consistent. It does not make
// check-then-add sequences atomic; callers that need that hold their own lock.
type ReservationStore struct {
	mu    sync.RWMutex
	rooms model.RoomTable
}

// NewReservationStore creates a store seeded with a copy of table.
func NewReservationStore(table model.RoomTable) *ReservationStore {
	if table == nil {
		table = model.RoomTable{}
	}
	return &ReservationStore{rooms: table.Clone()}
}

// HasRoom reports whether the room exists
func (s *ReservationStore) HasRoom(room string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rooms[room]
	return ok
}

// RoomNames returns the room keys in sorted order
func (s *ReservationStore) RoomNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rooms.RoomNames()
}

// Reservations returns a copy of the room's reservations
func (s *ReservationStore) Reservations(room string) ([]model.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservations, ok := s.rooms[room]
	if !ok {
		return nil, false
	}
	out := make([]model.Reservation, len(reservations))
	copy(out, reservations)
	return out, true
}

// All returns a deep copy of the whole table
func (s *ReservationStore) All() model.RoomTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rooms.Clone()
}

// Occupied reports whether any reservation in the room holds (date, timeSlot).
func (s *ReservationStore) Occupied(room, date, timeSlot string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms[room] {
		if r.Occupies(date, timeSlot) {
			return true
		}
	}
	return false
}

// AddRoom registers an empty room. Returns false if it already exists.
func (s *ReservationStore) AddRoom(room string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room]; ok {
		return false
	}
	s.rooms[room] = []model.Reservation{}
	return true
}

// Add appends r to the room unless the room is missing or (date, slot) is already held.
func (s *ReservationStore) Add(room string, r model.Reservation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, ok := s.rooms[room]
	if !ok {
		return false
	}
	for _, existing := range reservations {
		if existing.Occupies(r.Date, r.TimeSlot) {
			return false
		}
	}
	s.rooms[room] = append(reservations, r)
	return true
}

// Remove deletes the first reservation equal to r. Returns false when none matches.
func (s *ReservationStore) Remove(room string, r model.Reservation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, ok := s.rooms[room]
	if !ok {
		return false
	}
	for i, existing := range reservations {
		if existing == r {
			s.rooms[room] = append(reservations[:i:i], reservations[i+1:]...)
			return true
		}
	}
	return false
}

// SetReservations overwrites one room's sequence. Used to undo a mutation
// whose flush failed.
func (s *ReservationStore) SetReservations(room string, reservations []model.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]model.Reservation, len(reservations))
	copy(cp, reservations)
	s.rooms[room] = cp
}
