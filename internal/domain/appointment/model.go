package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Interval is the half-open span [Start, End) covered by an appointment.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval derives an interval from a start instant and a length in
// minutes. Non-positive lengths are rejected with ErrInvalidDuration.
func NewInterval(start time.Time, lengthMinutes int) (Interval, error) {
	if lengthMinutes <= 0 {
		return Interval{}, ErrInvalidDuration
	}
	return Interval{Start: start, End: start.Add(time.Duration(lengthMinutes) * time.Minute)}, nil
}

// Overlaps reports whether the two intervals share a non-zero span.
// Intervals that merely touch at an endpoint do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Collides reports whether the two intervals overlap or touch at an
// endpoint. The earliest-slot sweep uses this closed-boundary rule, so a
// candidate abutting an existing appointment is pushed past it; direct
// bookings are checked with the stricter Overlaps rule.
func (iv Interval) Collides(other Interval) bool {
	return !iv.Start.After(other.End) && !iv.End.Before(other.Start)
}

// Appointment maps to the appointment table. A persisted appointment is
// immutable; all rescheduling happens on a Candidate before commit.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// Candidate is a proposed appointment that has not been committed yet. Its
// start may be moved while searching for a free slot; the end always tracks
// the fixed duration.
type Candidate struct {
	DoctorID    uuid.UUID
	PatientName string

	start    time.Time
	duration time.Duration
}

// NewCandidate builds a candidate appointment of lengthMinutes starting at
// start. The duration is fixed for the life of the candidate.
func NewCandidate(doctorID uuid.UUID, patientName string, start time.Time, lengthMinutes int) (*Candidate, error) {
	if lengthMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Candidate{
		DoctorID:    doctorID,
		PatientName: patientName,
		start:       start,
		duration:    time.Duration(lengthMinutes) * time.Minute,
	}, nil
}

func (c *Candidate) Start() time.Time { return c.start }

func (c *Candidate) End() time.Time { return c.start.Add(c.duration) }

func (c *Candidate) Interval() Interval {
	return Interval{Start: c.start, End: c.End()}
}

// Reschedule moves the candidate to a new start time; the end is recomputed
// from the fixed duration.
func (c *Candidate) Reschedule(start time.Time) {
	c.start = start
}

// appointment converts the candidate into the value handed to the store for
// commit. The returned appointment has no identity until persisted.
func (c *Candidate) appointment() *Appointment {
	return &Appointment{
		DoctorID:    c.DoctorID,
		PatientName: c.PatientName,
		StartTime:   c.start,
		EndTime:     c.End(),
	}
}
