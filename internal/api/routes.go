package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
)

const snapshotPrefix = "/snapshots/"

func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ping", ping).Methods(http.MethodGet)

	dynamic := alice.New(s.sessions.LoadAndSave)
	router.Handle("/api/login", dynamic.ThenFunc(s.login)).Methods(http.MethodPost)
	router.Handle("/api/logout", dynamic.ThenFunc(s.logout)).Methods(http.MethodPost)

	protected := dynamic.Append(s.requireAuthentication)

	// daylight must be registered before the {device} route
	router.Handle("/api/lights/daylight", protected.ThenFunc(s.daylight)).Methods(http.MethodGet)
	router.Handle("/api/lights", protected.ThenFunc(s.listLights)).Methods(http.MethodGet)
	router.Handle("/api/lights/{device}", protected.ThenFunc(s.getLight)).Methods(http.MethodGet)
	router.Handle("/api/lights/{device}/schedules", protected.ThenFunc(s.addSchedule)).Methods(http.MethodPost)
	router.Handle("/api/lights/{device}/schedules/{id}", protected.ThenFunc(s.editSchedule)).Methods(http.MethodPut)
	router.Handle("/api/lights/{device}/schedules/{id}", protected.ThenFunc(s.deleteSchedule)).Methods(http.MethodDelete)

	router.Handle("/api/settings/interval", protected.ThenFunc(s.getInterval)).Methods(http.MethodGet)
	router.Handle("/api/settings/interval", protected.ThenFunc(s.setInterval)).Methods(http.MethodPut)

	router.Handle("/api/data", protected.ThenFunc(s.data)).Methods(http.MethodGet)
	router.Handle("/api/sets", protected.ThenFunc(s.sets)).Methods(http.MethodGet)
	router.Handle("/api/devices/{kind}", protected.ThenFunc(s.devices)).Methods(http.MethodGet)
	router.Handle("/api/readings/{source}/{device}", protected.ThenFunc(s.readings)).Methods(http.MethodGet)
	router.Handle("/api/snapshots", protected.ThenFunc(s.listSnapshots)).Methods(http.MethodGet)

	router.Handle("/api/process-image", protected.ThenFunc(s.processImage)).Methods(http.MethodPost)
	router.Handle("/api/analyze", protected.ThenFunc(s.analyze)).Methods(http.MethodPost)

	// LoadAndSave buffers the whole response, so the stream checks the session itself
	router.Handle("/api/events", alice.New(s.authenticateStream).ThenFunc(s.streamEvents)).Methods(http.MethodGet)

	if s.opts.SnapshotDir != "" {
		files := http.StripPrefix(snapshotPrefix, http.FileServer(http.Dir(s.opts.SnapshotDir)))
		router.PathPrefix(snapshotPrefix).Handler(protected.Then(files)).Methods(http.MethodGet)
	}

	stdLogger := s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
	standard := alice.New(
		handlers.RecoveryHandler(handlers.RecoveryLogger(stdLogger)),
		s.logRequest,
		s.requestID,
		securityHeaders,
	)
	if len(s.opts.AllowedOrigins) > 0 {
		standard = standard.Append(handlers.CORS(
			handlers.AllowedOrigins(s.opts.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
			handlers.AllowCredentials(),
		))
	}
	return standard.Then(router)
}
