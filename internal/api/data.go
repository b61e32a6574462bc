package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/fetch"
)

const defaultBucketsPerDay = 2

type dataResponse struct {
	Set string `json:"set"`
	*aggregate.Result
}

// data aggregates the snapshots and readings of a camera set over a range
func (s *Server) data(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	set := q.Get("set")
	if set == "" {
		s.errorResponse(w, r, fmt.Errorf("%w: set is required", errBadRequest))
		return
	}
	from, err := fetch.ParseRangeTime(q.Get("start"), s.opts.Location)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	to, err := fetch.ParseRangeTime(q.Get("end"), s.opts.Location)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	bucketsPerDay := defaultBucketsPerDay
	if g := q.Get("groups"); g != "" {
		bucketsPerDay, err = strconv.Atoi(g)
		if err != nil {
			s.errorResponse(w, r, fmt.Errorf("%w: groups must be a whole number", errBadRequest))
			return
		}
	}

	policy := s.opts.Averaging
	if p := q.Get("policy"); p != "" {
		policy, err = aggregate.ParseMissingPolicy(p)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
	}

	// validate before doing the fetch
	if _, err := aggregate.Aggregate(from, to, bucketsPerDay, nil); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	items, err := s.fetcher.Fetch(r.Context(), set, from, to)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result, err := aggregate.Aggregate(from, to, bucketsPerDay, items, aggregate.WithMissingPolicy(policy))
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataResponse{Set: set, Result: result})
}

type readingsResponse struct {
	Source   aggregate.Source    `json:"source"`
	Device   string              `json:"device"`
	Readings []aggregate.Reading `json:"readings"`
}

// readings lists the raw readings of one soil probe or dht22 sensor over a range
func (s *Server) readings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source, err := aggregate.ParseSource(vars["source"])
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	from, err := fetch.ParseRangeTime(q.Get("start"), s.opts.Location)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	to, err := fetch.ParseRangeTime(q.Get("end"), s.opts.Location)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	readings, err := s.fetcher.DeviceReadings(r.Context(), source, vars["device"], from, to)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, readingsResponse{Source: source, Device: vars["device"], Readings: readings})
}
