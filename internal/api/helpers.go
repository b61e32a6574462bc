package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/wheelibin/glasshouse/internal/imageproc"
	"github.com/wheelibin/glasshouse/internal/models"
)

var (
	errBadRequest         = errors.New("bad request")
	errUnauthorised       = errors.New("authentication required")
	errInvalidCredentials = errors.New("invalid credentials")
)

const maxUploadBytes = 32 << 20

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidTimeEncoding),
		errors.Is(err, models.ErrInvalidInterval),
		errors.Is(err, models.ErrInvalidConfiguration),
		errors.Is(err, imageproc.ErrInvalidImage),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrScheduleConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errUnauthorised), errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "uri", r.URL.RequestURI(), "requestId", requestIDFrom(r), "err", err)
		message = http.StatusText(status)
	}
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Unable to write response", "err", err)
	}
}

// decodeRequest fills dst from a JSON body or from posted form values
func (s *Server) decodeRequest(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("%w: %s", errBadRequest, err)
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %s", errBadRequest, err)
	}
	if err := s.formDecoder.Decode(dst, r.PostForm); err != nil {
		var invalidDecoderError *form.InvalidDecoderError
		if errors.As(err, &invalidDecoderError) {
			panic(err)
		}
		return fmt.Errorf("%w: %s", errBadRequest, err)
	}
	return nil
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
