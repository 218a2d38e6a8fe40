package appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

// Common errors returned by the booking service.
var (
	ErrInvalidDuration   = errors.New("length must be a positive number of minutes")
	ErrUnknownDoctor     = errors.New("doctor not found")
	ErrConflict          = errors.New("appointment conflicts with an existing appointment")
	ErrOutOfWorkingHours = errors.New("appointment is outside the doctor's working hours")
	ErrNoWorkingHours    = errors.New("doctor has no working hours configured")
)

// maxDayAdvances bounds the day-by-day advance of the earliest-slot search.
// Valid working days repeat weekly, so a week of advances without a hit
// means the doctor's windows are unusable.
const maxDayAdvances = 7

type Service struct {
	appointments Repository
	doctors      Directory

	// Serializes check-then-commit per doctor so two concurrent requests
	// cannot both pass the conflict check against a stale read.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex

	now func() time.Time
}

func NewService(appointments Repository, doctors Directory) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		locks:        make(map[uuid.UUID]*sync.Mutex),
		now:          time.Now,
	}
}

func (s *Service) doctorLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Service) resolveDoctor(ctx context.Context, name string) (*doctor.Doctor, error) {
	doc, err := s.doctors.GetDoctorByName(ctx, name)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return nil, ErrUnknownDoctor
		}
		return nil, err
	}
	return doc, nil
}

// Book validates and persists an appointment at an exact requested time.
// The candidate must not overlap any existing appointment for the doctor
// and must lie within the doctor's working window for that weekday.
func (s *Service) Book(ctx context.Context, doctorName, patientName string, start time.Time, lengthMinutes int) (*Appointment, error) {
	cand, err := NewCandidate(uuid.Nil, patientName, start, lengthMinutes)
	if err != nil {
		return nil, err
	}
	doc, err := s.resolveDoctor(ctx, doctorName)
	if err != nil {
		return nil, err
	}
	cand.DoctorID = doc.ID

	l := s.doctorLock(doc.ID)
	l.Lock()
	defer l.Unlock()

	conflict, err := s.hasConflict(ctx, cand)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrConflict
	}
	within, err := s.withinWorkingHours(ctx, cand)
	if err != nil {
		return nil, err
	}
	if !within {
		return nil, ErrOutOfWorkingHours
	}
	return s.commit(ctx, cand)
}

// BookEarliest finds and persists the earliest free slot of the requested
// length, starting the search at the current time. The candidate is pushed
// past conflicting appointments in chronological order and across
// non-working days until it satisfies both booking invariants.
func (s *Service) BookEarliest(ctx context.Context, doctorName, patientName string, lengthMinutes int) (*Appointment, error) {
	searchFrom := s.now()
	cand, err := NewCandidate(uuid.Nil, patientName, searchFrom, lengthMinutes)
	if err != nil {
		return nil, err
	}
	doc, err := s.resolveDoctor(ctx, doctorName)
	if err != nil {
		return nil, err
	}
	cand.DoctorID = doc.ID

	l := s.doctorLock(doc.ID)
	l.Lock()
	defer l.Unlock()

	windows, err := s.doctors.ListWorkingHours(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, ErrNoWorkingHours
	}
	byDay := make(map[int]*doctor.WorkingHours, len(windows))
	for _, wh := range windows {
		byDay[wh.DayOfWeek] = wh
	}

	if err := advanceToWindow(cand, byDay); err != nil {
		return nil, err
	}

	// Walk future and in-progress appointments in start order. Pushing the
	// candidate to the end of the earliest colliding appointment cannot
	// invalidate clearance already won against earlier ones, so the first
	// non-colliding appointment ends the sweep.
	existing, err := s.appointments.ListUpcoming(ctx, doc.ID, searchFrom)
	if err != nil {
		return nil, err
	}
	for _, app := range existing {
		if !cand.Interval().Collides(app.Interval()) {
			break
		}
		cand.Reschedule(app.EndTime)
		if err := advanceToWindow(cand, byDay); err != nil {
			return nil, err
		}
	}
	return s.commit(ctx, cand)
}

// GetAppointment looks up a committed appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// ListByDoctor returns the named doctor's appointments intersecting
// [start, end], boundaries inclusive.
func (s *Service) ListByDoctor(ctx context.Context, doctorName string, start, end time.Time, limit, offset int) ([]*Appointment, int, error) {
	doc, err := s.resolveDoctor(ctx, doctorName)
	if err != nil {
		return nil, 0, err
	}
	return s.appointments.ListInRange(ctx, doc.ID, start, end, limit, offset)
}

func (s *Service) commit(ctx context.Context, cand *Candidate) (*Appointment, error) {
	appt := cand.appointment()
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) hasConflict(ctx context.Context, cand *Candidate) (bool, error) {
	iv := cand.Interval()
	existing, err := s.appointments.ListConflicting(ctx, cand.DoctorID, iv.Start, iv.End)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

// withinWorkingHours applies the hour-granularity window rule for the
// candidate's weekday.
func (s *Service) withinWorkingHours(ctx context.Context, cand *Candidate) (bool, error) {
	wh, err := s.doctors.WorkingHoursForDay(ctx, cand.DoctorID, doctor.ISOWeekday(cand.Start()))
	if err != nil {
		if errors.Is(err, doctor.ErrWindowNotFound) {
			return false, nil
		}
		return false, err
	}
	return windowAdmits(wh, cand), nil
}

// windowAdmits reports whether the candidate fits the window: it must start
// at or after the opening hour and its end hour must be strictly below the
// closing hour. Only the hour components are examined, so a candidate
// ending 16:59 against a 17:00 close is admitted while one ending exactly
// 17:00 is not.
func windowAdmits(wh *doctor.WorkingHours, cand *Candidate) bool {
	return cand.Start().Hour() >= wh.StartHour && cand.End().Hour() < wh.EndHour
}

// advanceToWindow leaves the candidate untouched when it already lies in a
// working window; otherwise it moves the candidate to the opening hour of
// the next weekday that has a window, minutes zeroed. byDay must map ISO
// weekdays to at most one window each.
func advanceToWindow(cand *Candidate, byDay map[int]*doctor.WorkingHours) error {
	if wh, ok := byDay[doctor.ISOWeekday(cand.Start())]; ok && windowAdmits(wh, cand) {
		return nil
	}
	next := cand.Start()
	for i := 0; ; i++ {
		if i >= maxDayAdvances {
			return ErrNoWorkingHours
		}
		next = next.AddDate(0, 0, 1)
		if _, ok := byDay[doctor.ISOWeekday(next)]; ok {
			break
		}
	}
	wh := byDay[doctor.ISOWeekday(next)]
	cand.Reschedule(time.Date(next.Year(), next.Month(), next.Day(), wh.StartHour, 0, 0, 0, next.Location()))
	return nil
}
