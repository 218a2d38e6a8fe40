package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table. Doctors are created at provisioning time
// and are immutable afterwards.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WorkingHours maps to the working_hours table: the allowed booking window
// for one doctor on one ISO weekday. Hours are whole hours of the day and
// the window covers [StartHour, EndHour). At most one row per
// (doctor, weekday) pair.
type WorkingHours struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"` // ISO weekday: 1 = Monday .. 7 = Sunday
	StartHour int       `db:"start_hour" json:"start_hour"`
	EndHour   int       `db:"end_hour" json:"end_hour"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ISOWeekday returns the ISO-8601 weekday number for t (1 = Monday through
// 7 = Sunday), matching the numbering used by working_hours.day_of_week.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
