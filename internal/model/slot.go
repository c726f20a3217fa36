package model

// timeSlots is the fixed catalog of bookable slots, in chronological order.
var timeSlots = [...]string{
	"08:00-09:30",
	"09:45-11:15",
	"11:30-13:00",
	"13:15-14:45",
	"15:00-16:30",
	"16:45-18:15",
	"19:00-20:30",
	"20:45-22:15",
}

// Slots returns a copy of the slot catalog.
func Slots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots[:])
	return out
}

// IsValidSlot is an exact membership test; "8:00-9:30" is not "08:00-09:30".
func IsValidSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
