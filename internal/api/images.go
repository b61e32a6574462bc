package api

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/wheelibin/glasshouse/internal/imageproc"
	"github.com/wheelibin/glasshouse/internal/models"
)

func readUpload(header *multipart.FileHeader) (imageproc.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return imageproc.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return imageproc.Upload{}, err
	}
	return imageproc.Upload{Filename: header.Filename, Data: data}, nil
}

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("%w: %s", errBadRequest, err)
	}
	return nil
}

// processImage forwards one image for correction and streams the result back
func (s *Server) processImage(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		s.errorResponse(w, r, fmt.Errorf("%w: no image file provided", errBadRequest))
		return
	}
	upload, err := readUpload(headers[0])
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var params imageproc.Params
	if err := s.formDecoder.Decode(&params, r.PostForm); err != nil {
		s.errorResponse(w, r, fmt.Errorf("%w: %s", errBadRequest, err))
		return
	}

	processed, contentType, err := s.images.ProcessImage(r.Context(), upload, params)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", lo.Ternary(contentType == "", "image/png", contentType))
	_, _ = w.Write(processed)
}

// analyze sends uploaded images and stored snapshots picked by name for
// green pixel analysis
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := s.parseMultipart(w, r); err != nil {
			s.errorResponse(w, r, err)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseForm(); err != nil {
			s.errorResponse(w, r, fmt.Errorf("%w: %s", errBadRequest, err))
			return
		}
	}

	uploads := []imageproc.Upload{}
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			upload, err := readUpload(header)
			if err != nil {
				s.errorResponse(w, r, err)
				return
			}
			uploads = append(uploads, upload)
		}
	}
	for _, name := range lo.Uniq(r.Form["names"]) {
		data, err := s.snapshots.Read(r.Context(), models.ObjectRef{Name: name})
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		uploads = append(uploads, imageproc.Upload{Filename: name, Data: data})
	}

	result, err := s.images.Analyze(r.Context(), uploads)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type snapshotView struct {
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// listSnapshots lists every stored snapshot, sorted by name
func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	refs, err := s.snapshots.ListAll(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	views := make([]snapshotView, 0, len(refs))
	for _, ref := range refs {
		url, err := s.snapshots.ResolveURL(r.Context(), ref)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		meta, err := s.snapshots.Metadata(r.Context(), ref)
		if err != nil {
			s.errorResponse(w, r, err)
			return
		}
		views = append(views, snapshotView{Name: ref.Name, URL: url, Size: meta.Size, Modified: meta.CreatedTime})
	}
	s.writeJSON(w, http.StatusOK, views)
}
