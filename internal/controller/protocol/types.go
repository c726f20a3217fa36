// Package protocol defines the command/response envelopes exchanged with
// clients and maps them onto the booking engine.
package protocol

import "github.com/MauroGomes09/Unireserva/internal/model"

type MessageType string

const (
	RequestList    MessageType = "REQ_LIST"
	RequestListAll MessageType = "REQ_LIST_ALL"
	RequestBook    MessageType = "REQ_BOOK"
	RequestCheck   MessageType = "REQ_CHECK"
	RequestCancel  MessageType = "REQ_CANCEL"

	ResponseList    MessageType = "RES_LIST"
	ResponseListAll MessageType = "RES_LIST_ALL"
	ResponseStatus  MessageType = "RES_STATUS"
	ResponseConfirm MessageType = "RES_CONFIRM"
	ResponseCancel  MessageType = "RES_CANCEL"
	ResponseError   MessageType = "RES_ERROR"
)

// Availability strings as clients expect them
const (
	StatusAvailable   = "disponível"
	StatusUnavailable = "indisponível"
)

// Request is the command envelope. Which fields are required depends on Type.
type Request struct {
	Type     MessageType `json:"type"`
	RoomID   string      `json:"room_id,omitempty"`
	User     string      `json:"user,omitempty"`
	Date     string      `json:"date,omitempty"`
	TimeSlot string      `json:"time_slot,omitempty"`
}

// Response is the reply envelope.
type Response struct {
	Type   MessageType `json:"type"`
	Rooms  any         `json:"rooms,omitempty"`
	RoomID string      `json:"room_id,omitempty"`
	Status string      `json:"status,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// RoomList returns Rooms as a room name list, for RES_LIST responses.
func (r Response) RoomList() []string {
	names, _ := r.Rooms.([]string)
	return names
}

// RoomTable returns Rooms as a table, for RES_LIST_ALL responses.
func (r Response) RoomTable() model.RoomTable {
	table, _ := r.Rooms.(model.RoomTable)
	return table
}
