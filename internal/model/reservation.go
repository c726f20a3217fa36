package model

import "sort"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// Reservation binds a room slot on a date to a user. It has no identifier of its own:
// two reservations with the same fields are the same reservation.
type Reservation struct {
	User     string `json:"user"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
}

// Occupies reports whether the reservation holds the given date and slot.
func (r Reservation) Occupies(date, timeSlot string) bool {
	return r.Date == date && r.TimeSlot == timeSlot
}

// RoomTable maps a room key to its reservations in insertion order.
type RoomTable map[string][]Reservation

// Clone returns a deep copy. Every room in the copy has a non-nil slice so
// empty rooms encode as [] rather than null.
func (t RoomTable) Clone() RoomTable {
	out := make(RoomTable, len(t))
	for room, reservations := range t {
		cp := make([]Reservation, len(reservations))
		copy(cp, reservations)
		out[room] = cp
	}
	return out
}

// RoomNames returns the room keys in sorted order.
func (t RoomTable) RoomNames() []string {
	names := make([]string, 0, len(t))
	for room := range t {
		names = append(names, room)
	}
	sort.Strings(names)
	return names
}

// FilterByDate keeps every room but only the reservations made for date.
func (t RoomTable) FilterByDate(date string) RoomTable {
	out := make(RoomTable, len(t))
	for room, reservations := range t {
		filtered := make([]Reservation, 0, len(reservations))
		for _, r := range reservations {
			if r.Date == date {
				filtered = append(filtered, r)
			}
		}
		out[room] = filtered
	}
	return out
}

// Equal compares two tables room by room, order included.
func (t RoomTable) Equal(other RoomTable) bool {
	if len(t) != len(other) {
		return false
	}
	for room, reservations := range t {
		theirs, ok := other[room]
		if !ok || len(theirs) != len(reservations) {
			return false
		}
		for i := range reservations {
			if reservations[i] != theirs[i] {
				return false
			}
		}
	}
	return true
}

// SlotOccupancy describes one catalog slot of a room on a given date.
type SlotOccupancy struct {
	TimeSlot string `json:"time_slot"`
	Free     bool   `json:"free"`
	User     string `json:"user,omitempty"`
}
