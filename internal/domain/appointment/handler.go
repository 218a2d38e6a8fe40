package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicbook/clinicbook/pkg/pagination"
)

// Timestamps are naive local date-times; both the ISO-8601 "T" form and the
// space-separated form are accepted on input.
var timeLayouts = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"}

const timeLayout = "2006-01-02T15:04:05"

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.CreateAppointment)
	api.POST("/appointments/earliest", h.CreateEarliestAppointment)
	api.GET("/appointments/:id", h.GetAppointment)
	api.GET("/doctors/:name/appointments", h.ListDoctorAppointments)
}

type createAppointmentRequest struct {
	DoctorName    string `json:"doctorName"`
	PatientName   string `json:"patientName"`
	StartTime     string `json:"startTime"`
	LengthMinutes int    `json:"lengthMinutes"`
}

type createEarliestRequest struct {
	DoctorName    string `json:"doctorName"`
	PatientName   string `json:"patientName"`
	LengthMinutes int    `json:"lengthMinutes"`
}

// appointmentSummary is the wire shape for a committed appointment.
type appointmentSummary struct {
	ID        string `json:"id"`
	Doctor    string `json:"doctor"`
	Patient   string `json:"patient"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func summarize(a *Appointment, doctorName string) appointmentSummary {
	return appointmentSummary{
		ID:        a.ID.String(),
		Doctor:    doctorName,
		Patient:   a.PatientName,
		StartTime: a.StartTime.Format(timeLayout),
		EndTime:   a.EndTime.Format(timeLayout),
	}
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DoctorName == "" || req.PatientName == "" || req.StartTime == "" || req.LengthMinutes == 0 {
		return echo.NewHTTPError(http.StatusBadRequest,
			"doctorName, patientName, startTime and lengthMinutes are required")
	}
	start, err := parseTime(req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startTime must be an ISO-8601 date-time")
	}
	appt, err := h.svc.Book(c.Request().Context(), req.DoctorName, req.PatientName, start, req.LengthMinutes)
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusCreated, summarize(appt, req.DoctorName))
}

func (h *Handler) CreateEarliestAppointment(c echo.Context) error {
	var req createEarliestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DoctorName == "" || req.PatientName == "" || req.LengthMinutes == 0 {
		return echo.NewHTTPError(http.StatusBadRequest,
			"doctorName, patientName and lengthMinutes are required")
	}
	appt, err := h.svc.BookEarliest(c.Request().Context(), req.DoctorName, req.PatientName, req.LengthMinutes)
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusCreated, summarize(appt, req.DoctorName))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch appointment")
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) ListDoctorAppointments(c echo.Context) error {
	name := c.Param("name")
	startParam := c.QueryParam("startTime")
	endParam := c.QueryParam("endTime")
	if name == "" || startParam == "" || endParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "startTime and endTime are required")
	}
	start, err := parseTime(startParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startTime must be an ISO-8601 date-time")
	}
	end, err := parseTime(endParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "endTime must be an ISO-8601 date-time")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByDoctor(c.Request().Context(), name, start, end, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrUnknownDoctor) {
			return echo.NewHTTPError(http.StatusNotFound, ErrUnknownDoctor.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	summaries := make([]appointmentSummary, 0, len(items))
	for _, a := range items {
		summaries = append(summaries, summarize(a, name))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(summaries, total, pg.Limit, pg.Offset))
}

// bookingError maps service errors onto HTTP responses. Conflicting and
// out-of-hours bookings share a single user-facing rejection.
func bookingError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return echo.NewHTTPError(http.StatusBadRequest, ErrInvalidDuration.Error())
	case errors.Is(err, ErrUnknownDoctor):
		return echo.NewHTTPError(http.StatusNotFound, ErrUnknownDoctor.Error())
	case errors.Is(err, ErrConflict), errors.Is(err, ErrOutOfWorkingHours):
		return echo.NewHTTPError(http.StatusBadRequest,
			"there are conflicts with the given appointment time for the doctor you requested")
	case errors.Is(err, ErrNoWorkingHours):
		return echo.NewHTTPError(http.StatusBadRequest, ErrNoWorkingHours.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create appointment")
	}
}
