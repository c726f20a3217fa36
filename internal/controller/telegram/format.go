package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MauroGomes09/Unireserva/internal/controller/protocol"
	"github.com/MauroGomes09/Unireserva/internal/model"
	"github.com/go-telegram/bot/models"
)

const helpText = "📚 Comandos disponíveis:\n\n" +
	"/rooms - Listar salas\n" +
	"/schedule <sala> <data> - Horários da sala no dia\n" +
	"/check <sala> <data> <horário> - Verificar disponibilidade\n" +
	"/book <sala> <data> <horário> - Reservar\n" +
	"/cancel <sala> <data> <horário> - Cancelar reserva\n\n" +
	"Datas no formato AAAA-MM-DD, horários como 08:00-09:30."

// parseCommand splits "/cmd@bot a b c" into "cmd" and its arguments.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}
	name := strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name), fields[1:]
}

// userIdentity is the reservation owner for a Telegram account: the
// username when set, otherwise the numeric id.
func userIdentity(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}

func usage(command string, args ...string) string {
	return fmt.Sprintf("❌ Uso: /%s %s", command, strings.Join(args, " "))
}

func formatRooms(names []string) string {
	if len(names) == 0 {
		return "Nenhuma sala cadastrada."
	}
	var sb strings.Builder
	sb.WriteString("🏫 Salas:\n")
	for _, name := range names {
		sb.WriteString("• ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatSchedule(room, date string, schedule []model.SlotOccupancy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 %s em %s\n", room, date)
	for _, s := range schedule {
		if s.Free {
			fmt.Fprintf(&sb, "\n✅ %s livre", s.TimeSlot)
		} else {
			fmt.Fprintf(&sb, "\n⛔ %s %s", s.TimeSlot, s.User)
		}
	}
	return sb.String()
}

// formatResponse renders a dispatcher response for chat
func formatResponse(req protocol.Request, resp protocol.Response) string {
	switch resp.Type {
	case protocol.ResponseError:
		return "❌ " + resp.Error
	case protocol.ResponseStatus:
		if resp.Status == protocol.StatusAvailable {
			return fmt.Sprintf("✅ %s %s %s: %s", req.RoomID, req.Date, req.TimeSlot, resp.Status)
		}
		return fmt.Sprintf("⛔ %s %s %s: %s", req.RoomID, req.Date, req.TimeSlot, resp.Status)
	case protocol.ResponseConfirm:
		return fmt.Sprintf("✅ Reserva confirmada: %s %s %s", resp.RoomID, req.Date, req.TimeSlot)
	case protocol.ResponseCancel:
		return fmt.Sprintf("🗑 Reserva cancelada: %s %s %s", req.RoomID, req.Date, req.TimeSlot)
	case protocol.ResponseList:
		return formatRooms(resp.RoomList())
	default:
		return string(resp.Type)
	}
}
