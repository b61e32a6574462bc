package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/constants"
	"github.com/wheelibin/glasshouse/internal/models"
	"github.com/wheelibin/glasshouse/internal/schedule"
	"github.com/wheelibin/glasshouse/internal/settings"
	"golang.org/x/crypto/bcrypt"
)

type loginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := s.decodeRequest(r, &form); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	operator := s.opts.Operator
	if operator.Username == "" || form.Username != operator.Username {
		s.errorResponse(w, r, errInvalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(form.Password)); err != nil {
		s.logger.Warn("Failed login", "username", form.Username, "remote", r.RemoteAddr)
		s.errorResponse(w, r, errInvalidCredentials)
		return
	}

	if err := s.sessions.RenewToken(r.Context()); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.sessions.Put(r.Context(), constants.SessionKeyOperator, form.Username)
	s.logger.Info("Operator logged in", "username", form.Username)
	s.writeJSON(w, http.StatusOK, map[string]string{"username": form.Username})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.RenewToken(r.Context()); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.sessions.Remove(r.Context(), constants.SessionKeyOperator)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listLights(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.schedules.Lights())
}

func (s *Server) getLight(w http.ResponseWriter, r *http.Request) {
	device := mux.Vars(r)["device"]
	if !s.schedules.HasDevice(device) {
		s.errorResponse(w, r, fmt.Errorf("light %s: %w", device, models.ErrNotFound))
		return
	}
	s.writeJSON(w, http.StatusOK, models.LightDevice{ID: device, Schedules: s.schedules.View(device)})
}

type scheduleForm struct {
	StartTime *int `json:"start_time" form:"start_time"`
	EndTime   *int `json:"end_time" form:"end_time"`
}

func (s *Server) decodeInterval(r *http.Request) (schedule.Interval, error) {
	var form scheduleForm
	if err := s.decodeRequest(r, &form); err != nil {
		return schedule.Interval{}, err
	}
	if form.StartTime == nil || form.EndTime == nil {
		return schedule.Interval{}, fmt.Errorf("%w: start_time and end_time are required", errBadRequest)
	}
	return schedule.Interval{Start: schedule.HHMM(*form.StartTime), End: schedule.HHMM(*form.EndTime)}, nil
}

func (s *Server) addSchedule(w http.ResponseWriter, r *http.Request) {
	device := mux.Vars(r)["device"]
	interval, err := s.decodeInterval(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	record, err := s.schedules.Add(r.Context(), device, interval)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, s.schedules.ViewRecord(device, record))
}

func (s *Server) editSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	interval, err := s.decodeInterval(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	record, err := s.schedules.Edit(r.Context(), vars["device"], vars["id"], interval)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.schedules.ViewRecord(vars["device"], record))
}

func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	record, err := s.schedules.Delete(r.Context(), vars["device"], vars["id"])
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.schedules.ViewRecord(vars["device"], record))
}

func (s *Server) daylight(w http.ResponseWriter, r *http.Request) {
	if s.opts.GeoLocation == "" {
		s.errorResponse(w, r, fmt.Errorf("no geoLocation configured: %w", models.ErrNotFound))
		return
	}
	lat, lng, err := schedule.ParseGeoLocation(s.opts.GeoLocation)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	date := time.Now().In(s.opts.Location)
	if q := r.URL.Query().Get("date"); q != "" {
		date, err = time.ParseInLocation("2006-01-02", q, s.opts.Location)
		if err != nil {
			s.errorResponse(w, r, fmt.Errorf("%w: date must be YYYY-MM-DD", errBadRequest))
			return
		}
	}

	interval, err := schedule.DaylightInterval(lat, lng, date)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"date":     date.Format("2006-01-02"),
		"daylight": s.schedules.ViewRecord("daylight", schedule.ScheduleRecord{ID: "daylight", Interval: interval}),
	})
}

type intervalForm struct {
	CollectionIntervalHour string `json:"collectionIntervalHour" form:"collectionIntervalHour"`
	Hours                  []int  `json:"hours" form:"hours"`
}

func intervalResponse(hours []int) map[string]any {
	return map[string]any{
		constants.FieldCollectionIntervalHour: settings.FormatPollingInterval(hours),
		"hours":                               hours,
	}
}

func (s *Server) getInterval(w http.ResponseWriter, r *http.Request) {
	hours, err := s.settings.Get(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, intervalResponse(hours))
}

func (s *Server) setInterval(w http.ResponseWriter, r *http.Request) {
	var form intervalForm
	if err := s.decodeRequest(r, &form); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	hours := form.Hours
	if len(hours) == 0 {
		var err error
		hours, err = settings.ParsePollingInterval(form.CollectionIntervalHour)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
	}

	if err := s.settings.Set(r.Context(), hours); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, intervalResponse(hours))
}

func (s *Server) sets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.fetcher.Sets(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sets)
}

func (s *Server) devices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.fetcher.Devices(r.Context(), mux.Vars(r)["kind"])
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lo.Ternary(devices == nil, []models.Device{}, devices))
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	// the server write timeout would otherwise end the stream
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Debug("Unable to clear write deadline for event stream", "err", err)
	}
	s.events.ServeHTTP(w, r)
}
