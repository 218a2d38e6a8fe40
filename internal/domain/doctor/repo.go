package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByName(ctx context.Context, name string) (*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}

type WorkingHoursRepository interface {
	Create(ctx context.Context, wh *WorkingHours) error
	GetByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*WorkingHours, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*WorkingHours, error)
}
