package service

import "errors"

// Booking failures. Every operation returns one of these (possibly wrapped)
// instead of panicking; match with errors.Is.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrInvalidSlot         = errors.New("invalid time slot")
	ErrSlotConflict        = errors.New("time slot already booked")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrMalformedInput      = errors.New("malformed input")
	ErrPersistenceFailure  = errors.New("persistence failure")
)

// ErrorMessage returns the client-facing text for err
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "Sala inexistente"
	case errors.Is(err, ErrInvalidSlot):
		return "Horário inválido"
	case errors.Is(err, ErrSlotConflict):
		return "Conflito de horário"
	case errors.Is(err, ErrReservationNotFound):
		return "Reserva não encontrada"
	case errors.Is(err, ErrUnknownCommand):
		return "Tipo de mensagem desconhecido"
	case errors.Is(err, ErrMalformedInput):
		return "Requisição inválida"
	case errors.Is(err, ErrPersistenceFailure):
		return "Falha ao salvar reservas"
	default:
		return "Erro interno"
	}
}
