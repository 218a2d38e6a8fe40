package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Common errors returned by the doctor service.
var (
	ErrNotFound        = errors.New("doctor not found")
	ErrWindowNotFound  = errors.New("working hours not found")
	ErrDuplicateWindow = errors.New("working hours already defined for that day")
)

type Service struct {
	doctors Repository
	hours   WorkingHoursRepository
}

func NewService(doctors Repository, hours WorkingHoursRepository) *Service {
	return &Service{doctors: doctors, hours: hours}
}

// CreateDoctor provisions a new doctor.
func (s *Service) CreateDoctor(ctx context.Context, name string) (*Doctor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	d := &Doctor{Name: name}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// GetDoctorByName resolves a doctor by display name. Returns ErrNotFound
// when no doctor with that name exists.
func (s *Service) GetDoctorByName(ctx context.Context, name string) (*Doctor, error) {
	return s.doctors.GetByName(ctx, name)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// AddWorkingHours provisions a weekly booking window for a doctor. The
// search logic assumes at most one window per (doctor, weekday) pair, so
// duplicates are rejected here rather than left undefined.
func (s *Service) AddWorkingHours(ctx context.Context, wh *WorkingHours) error {
	if wh.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if wh.DayOfWeek < 1 || wh.DayOfWeek > 7 {
		return fmt.Errorf("day_of_week must be between 1 (Monday) and 7 (Sunday)")
	}
	if wh.StartHour < 0 || wh.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23")
	}
	if wh.EndHour < 0 || wh.EndHour > 23 {
		return fmt.Errorf("end_hour must be between 0 and 23")
	}
	if wh.StartHour >= wh.EndHour {
		return fmt.Errorf("start_hour must be before end_hour")
	}
	if _, err := s.doctors.GetByID(ctx, wh.DoctorID); err != nil {
		return ErrNotFound
	}
	if _, err := s.hours.GetByDoctorAndDay(ctx, wh.DoctorID, wh.DayOfWeek); err == nil {
		return ErrDuplicateWindow
	} else if !errors.Is(err, ErrWindowNotFound) {
		return err
	}
	return s.hours.Create(ctx, wh)
}

// WorkingHoursForDay returns the doctor's window for the given ISO weekday,
// or ErrWindowNotFound when the doctor does not work that day.
func (s *Service) WorkingHoursForDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) (*WorkingHours, error) {
	return s.hours.GetByDoctorAndDay(ctx, doctorID, dayOfWeek)
}

func (s *Service) ListWorkingHours(ctx context.Context, doctorID uuid.UUID) ([]*WorkingHours, error) {
	return s.hours.ListByDoctor(ctx, doctorID)
}
