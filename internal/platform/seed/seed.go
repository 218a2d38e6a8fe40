package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

// demoDoctor describes one doctor provisioned by Demo, with a single weekly
// window repeated Monday through Friday.
type demoDoctor struct {
	name      string
	startHour int
	endHour   int
}

var demoDoctors = []demoDoctor{
	{name: "Strange", startHour: 9, endHour: 17},
	{name: "Who", startHour: 8, endHour: 16},
}

// Demo provisions a small fixed set of doctors with weekday working hours.
// It is idempotent: doctors that already exist are left untouched.
func Demo(ctx context.Context, svc *doctor.Service, logger zerolog.Logger) error {
	for _, dd := range demoDoctors {
		if _, err := svc.GetDoctorByName(ctx, dd.name); err == nil {
			logger.Debug().Str("doctor", dd.name).Msg("demo doctor already present")
			continue
		} else if !errors.Is(err, doctor.ErrNotFound) {
			return fmt.Errorf("look up demo doctor %s: %w", dd.name, err)
		}

		d, err := svc.CreateDoctor(ctx, dd.name)
		if err != nil {
			return fmt.Errorf("create demo doctor %s: %w", dd.name, err)
		}
		for day := 1; day <= 5; day++ {
			wh := &doctor.WorkingHours{
				DoctorID:  d.ID,
				DayOfWeek: day,
				StartHour: dd.startHour,
				EndHour:   dd.endHour,
			}
			if err := svc.AddWorkingHours(ctx, wh); err != nil {
				return fmt.Errorf("add working hours for %s day %d: %w", dd.name, day, err)
			}
		}
		logger.Info().
			Str("doctor", dd.name).
			Int("start_hour", dd.startHour).
			Int("end_hour", dd.endHour).
			Msg("seeded demo doctor")
	}
	return nil
}
