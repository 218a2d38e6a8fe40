package seed

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

type memDoctorRepo struct {
	doctors map[uuid.UUID]*doctor.Doctor
}

func (m *memDoctorRepo) Create(_ context.Context, d *doctor.Doctor) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *memDoctorRepo) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, doctor.ErrNotFound
	}
	return d, nil
}

func (m *memDoctorRepo) GetByName(_ context.Context, name string) (*doctor.Doctor, error) {
	for _, d := range m.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, doctor.ErrNotFound
}

func (m *memDoctorRepo) List(_ context.Context, limit, offset int) ([]*doctor.Doctor, int, error) {
	var all []*doctor.Doctor
	for _, d := range m.doctors {
		all = append(all, d)
	}
	return all, len(all), nil
}

type memHoursRepo struct {
	windows []*doctor.WorkingHours
}

func (m *memHoursRepo) Create(_ context.Context, wh *doctor.WorkingHours) error {
	wh.ID = uuid.New()
	wh.CreatedAt = time.Now()
	m.windows = append(m.windows, wh)
	return nil
}

func (m *memHoursRepo) GetByDoctorAndDay(_ context.Context, doctorID uuid.UUID, dayOfWeek int) (*doctor.WorkingHours, error) {
	for _, wh := range m.windows {
		if wh.DoctorID == doctorID && wh.DayOfWeek == dayOfWeek {
			return wh, nil
		}
	}
	return nil, doctor.ErrWindowNotFound
}

func (m *memHoursRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*doctor.WorkingHours, error) {
	var result []*doctor.WorkingHours
	for _, wh := range m.windows {
		if wh.DoctorID == doctorID {
			result = append(result, wh)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })
	return result, nil
}

func TestDemo_SeedsDoctors(t *testing.T) {
	repo := &memDoctorRepo{doctors: make(map[uuid.UUID]*doctor.Doctor)}
	hours := &memHoursRepo{}
	svc := doctor.NewService(repo, hours)

	if err := Demo(context.Background(), svc, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	strange, err := svc.GetDoctorByName(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("expected Strange to be seeded: %v", err)
	}
	who, err := svc.GetDoctorByName(context.Background(), "Who")
	if err != nil {
		t.Fatalf("expected Who to be seeded: %v", err)
	}

	windows, err := svc.ListWorkingHours(context.Background(), strange.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 5 {
		t.Fatalf("got %d windows for Strange, want 5 weekdays", len(windows))
	}
	for i, wh := range windows {
		if wh.DayOfWeek != i+1 {
			t.Errorf("windows[%d].DayOfWeek = %d, want %d", i, wh.DayOfWeek, i+1)
		}
		if wh.StartHour != 9 || wh.EndHour != 17 {
			t.Errorf("Strange window = [%d, %d), want [9, 17)", wh.StartHour, wh.EndHour)
		}
	}

	whoWindows, err := svc.ListWorkingHours(context.Background(), who.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(whoWindows) != 5 || whoWindows[0].StartHour != 8 || whoWindows[0].EndHour != 16 {
		t.Errorf("Who windows = %+v, want five [8, 16) weekdays", whoWindows)
	}
}

func TestDemo_Idempotent(t *testing.T) {
	repo := &memDoctorRepo{doctors: make(map[uuid.UUID]*doctor.Doctor)}
	hours := &memHoursRepo{}
	svc := doctor.NewService(repo, hours)

	if err := Demo(context.Background(), svc, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Demo(context.Background(), svc, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error on re-run: %v", err)
	}

	if len(repo.doctors) != 2 {
		t.Errorf("got %d doctors after two runs, want 2", len(repo.doctors))
	}
	if len(hours.windows) != 10 {
		t.Errorf("got %d windows after two runs, want 10", len(hours.windows))
	}
}
