package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) Repository { return &doctorRepoPG{pool: pool} }

const doctorCols = `id, name, created_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctor (id, name) VALUES ($1, $2)
		RETURNING created_at`,
		d.ID, d.Name).Scan(&d.CreatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByName(ctx context.Context, name string) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE name = $1`, name))
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== WorkingHours Repository ===========

type workingHoursRepoPG struct{ pool *pgxpool.Pool }

func NewWorkingHoursRepoPG(pool *pgxpool.Pool) WorkingHoursRepository {
	return &workingHoursRepoPG{pool: pool}
}

const hoursCols = `id, doctor_id, day_of_week, start_hour, end_hour, created_at`

func (r *workingHoursRepoPG) scanWindow(row pgx.Row) (*WorkingHours, error) {
	var wh WorkingHours
	err := row.Scan(&wh.ID, &wh.DoctorID, &wh.DayOfWeek, &wh.StartHour, &wh.EndHour, &wh.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	return &wh, err
}

func (r *workingHoursRepoPG) Create(ctx context.Context, wh *WorkingHours) error {
	wh.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO working_hours (id, doctor_id, day_of_week, start_hour, end_hour)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		wh.ID, wh.DoctorID, wh.DayOfWeek, wh.StartHour, wh.EndHour).Scan(&wh.CreatedAt)
}

func (r *workingHoursRepoPG) GetByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*WorkingHours, error) {
	return r.scanWindow(r.pool.QueryRow(ctx,
		`SELECT `+hoursCols+` FROM working_hours WHERE doctor_id = $1 AND day_of_week = $2`,
		doctorID, dayOfWeek))
}

func (r *workingHoursRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*WorkingHours, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+hoursCols+` FROM working_hours WHERE doctor_id = $1 ORDER BY day_of_week`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WorkingHours
	for rows.Next() {
		wh, err := r.scanWindow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, wh)
	}
	return items, rows.Err()
}
