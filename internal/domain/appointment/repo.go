package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// ListInRange returns the doctor's appointments intersecting
	// [start, end] with inclusive boundaries, in creation order.
	ListInRange(ctx context.Context, doctorID uuid.UUID, start, end time.Time, limit, offset int) ([]*Appointment, int, error)
	// ListConflicting returns the doctor's appointments whose spans
	// strictly overlap [start, end); appointments that merely touch a
	// boundary are excluded.
	ListConflicting(ctx context.Context, doctorID uuid.UUID, start, end time.Time) ([]*Appointment, error)
	// ListUpcoming returns the doctor's appointments that start after asOf
	// or are in progress at asOf, sorted ascending by start time.
	ListUpcoming(ctx context.Context, doctorID uuid.UUID, asOf time.Time) ([]*Appointment, error)
}

// Directory resolves doctors and their weekly working-hour windows. It is
// satisfied by the doctor service; the scheduling engine never touches a
// persistence handle directly.
type Directory interface {
	GetDoctorByName(ctx context.Context, name string) (*doctor.Doctor, error)
	WorkingHoursForDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*doctor.WorkingHours, error)
	ListWorkingHours(ctx context.Context, doctorID uuid.UUID) ([]*doctor.WorkingHours, error)
}
