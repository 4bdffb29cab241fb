package persistence

import (
	"strings"

	"github.com/inheaven/petservice/internal/appointments/domain"
)

const appointmentColumns = `id, owner_id, name, pet_name, type, breed, health_status, health_history,
	note, appointment_time, check_in_time, status, preferred_doctor_id, assigned_doctor_id,
	created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// foldName is the search key stored in name_folded. SQLite's LOWER only
// folds ASCII, so names are folded here.
func foldName(name string) string {
	return strings.ToLower(name)
}

// likePattern builds a substring pattern for query against name_folded.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(foldName(query)) + "%"
}

func statusArg(status *domain.Status) any {
	if status == nil {
		return nil
	}
	return status.String()
}
