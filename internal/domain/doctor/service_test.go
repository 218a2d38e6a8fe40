package doctor

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) GetByName(_ context.Context, name string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	var all []*Doctor
	for _, d := range m.doctors {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

type mockHoursRepo struct {
	windows []*WorkingHours
}

func newMockHoursRepo() *mockHoursRepo {
	return &mockHoursRepo{}
}

func (m *mockHoursRepo) Create(_ context.Context, wh *WorkingHours) error {
	wh.ID = uuid.New()
	wh.CreatedAt = time.Now()
	m.windows = append(m.windows, wh)
	return nil
}

func (m *mockHoursRepo) GetByDoctorAndDay(_ context.Context, doctorID uuid.UUID, dayOfWeek int) (*WorkingHours, error) {
	for _, wh := range m.windows {
		if wh.DoctorID == doctorID && wh.DayOfWeek == dayOfWeek {
			return wh, nil
		}
	}
	return nil, ErrWindowNotFound
}

func (m *mockHoursRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*WorkingHours, error) {
	var result []*WorkingHours
	for _, wh := range m.windows {
		if wh.DoctorID == doctorID {
			result = append(result, wh)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DayOfWeek < result[j].DayOfWeek })
	return result, nil
}

func newTestService() (*Service, *mockRepo, *mockHoursRepo) {
	repo := newMockRepo()
	hours := newMockHoursRepo()
	return NewService(repo, hours), repo, hours
}

// -- Doctors --

func TestCreateDoctor_Succeeds(t *testing.T) {
	svc, _, _ := newTestService()
	d, err := svc.CreateDoctor(context.Background(), "  Strange ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Strange" {
		t.Errorf("Name = %q, want trimmed name", d.Name)
	}
	if d.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
}

func TestCreateDoctor_RequiresName(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CreateDoctor(context.Background(), "   "); err == nil {
		t.Error("expected an error for a blank name")
	}
}

func TestGetDoctorByName(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateDoctor(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetDoctorByName(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %v, want %v", got.ID, created.ID)
	}

	if _, err := svc.GetDoctorByName(context.Background(), "House"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// -- Working hours --

func TestAddWorkingHours_Succeeds(t *testing.T) {
	svc, _, _ := newTestService()
	d, err := svc.CreateDoctor(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wh := &WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}
	if err := svc.AddWorkingHours(context.Background(), wh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}

	got, err := svc.WorkingHoursForDay(context.Background(), d.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartHour != 9 || got.EndHour != 17 {
		t.Errorf("window = [%d, %d)", got.StartHour, got.EndHour)
	}
}

func TestAddWorkingHours_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	d, err := svc.CreateDoctor(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		wh   WorkingHours
	}{
		{"day too low", WorkingHours{DoctorID: d.ID, DayOfWeek: 0, StartHour: 9, EndHour: 17}},
		{"day too high", WorkingHours{DoctorID: d.ID, DayOfWeek: 8, StartHour: 9, EndHour: 17}},
		{"negative start", WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: -1, EndHour: 17}},
		{"end past midnight", WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 9, EndHour: 24}},
		{"inverted window", WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 17, EndHour: 9}},
		{"empty window", WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 9, EndHour: 9}},
		{"missing doctor id", WorkingHours{DayOfWeek: 1, StartHour: 9, EndHour: 17}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wh := tc.wh
			if err := svc.AddWorkingHours(context.Background(), &wh); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestAddWorkingHours_UnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService()
	wh := &WorkingHours{DoctorID: uuid.New(), DayOfWeek: 1, StartHour: 9, EndHour: 17}
	if err := svc.AddWorkingHours(context.Background(), wh); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddWorkingHours_RejectsDuplicateDay(t *testing.T) {
	svc, _, _ := newTestService()
	d, err := svc.CreateDoctor(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddWorkingHours(context.Background(), &WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 9, EndHour: 17}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = svc.AddWorkingHours(context.Background(), &WorkingHours{DoctorID: d.ID, DayOfWeek: 1, StartHour: 8, EndHour: 16})
	if !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("err = %v, want ErrDuplicateWindow", err)
	}
}

func TestListWorkingHours_SortedByDay(t *testing.T) {
	svc, _, _ := newTestService()
	d, err := svc.CreateDoctor(context.Background(), "Strange")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, day := range []int{5, 1, 3} {
		if err := svc.AddWorkingHours(context.Background(), &WorkingHours{DoctorID: d.ID, DayOfWeek: day, StartHour: 9, EndHour: 17}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	items, err := svc.ListWorkingHours(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d windows, want 3", len(items))
	}
	for i, want := range []int{1, 3, 5} {
		if items[i].DayOfWeek != want {
			t.Errorf("items[%d].DayOfWeek = %d, want %d", i, items[i].DayOfWeek, want)
		}
	}
}
