package imageproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wheelibin/glasshouse/internal/models"
)

// Upload is an image file received from an operator
type Upload struct {
	Filename string
	Data     []byte
}

// ImageService talks to the external image processing service
type ImageService struct {
	logger  *log.Logger
	baseURL string
	client  *http.Client
}

func NewImageService(logger *log.Logger, baseURL string, timeout time.Duration) *ImageService {
	return &ImageService{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ProcessImage sends one image for contrast and gamma correction and returns
// the processed image with its content type. Params left at zero are chosen
// from the image's median luminance.
func (s *ImageService) ProcessImage(ctx context.Context, upload Upload, params Params) ([]byte, string, error) {
	upload = s.named(upload)
	if !AllowedFile(upload.Filename) {
		return nil, "", fmt.Errorf("%w: unsupported file type %q", ErrInvalidImage, upload.Filename)
	}

	if !params.Complete() {
		median, err := MedianLuminance(bytes.NewReader(upload.Data))
		if err != nil {
			return nil, "", err
		}
		params = params.Merge(ParamsForLuminance(median))
		s.logger.Debug("Chose image parameters", "median", median, "gamma", params.Gamma, "clipLimit", params.ClipLimit)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := writeFile(w, "image", upload); err != nil {
		return nil, "", err
	}
	fields := map[string]string{
		"gamma":     strconv.FormatFloat(params.Gamma, 'f', -1, 64),
		"clipLimit": strconv.FormatFloat(params.ClipLimit, 'f', -1, 64),
		"tileGridX": strconv.Itoa(params.TileGridX),
		"tileGridY": strconv.Itoa(params.TileGridY),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return s.makeRequest(ctx, "/process-image", body, w.FormDataContentType())
}

// Analyze sends a batch of images for green pixel analysis
func (s *ImageService) Analyze(ctx context.Context, uploads []Upload) (*models.AnalysisResult, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no images provided", ErrInvalidImage)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, upload := range uploads {
		if err := writeFile(w, "images", s.named(upload)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	respBody, _, err := s.makeRequest(ctx, "/process-and-analyze", body, w.FormDataContentType())
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, fmt.Errorf("Error parsing analysis response: %w", err)
	}
	return result, nil
}

func (s *ImageService) named(upload Upload) Upload {
	if upload.Filename == "" {
		upload.Filename = uuid.NewString() + ".png"
	}
	return upload
}

func writeFile(w *multipart.Writer, field string, upload Upload) error {
	part, err := w.CreateFormFile(field, upload.Filename)
	if err != nil {
		return err
	}
	_, err = part.Write(upload.Data)
	return err
}

func (s *ImageService) makeRequest(ctx context.Context, path string, body io.Reader, contentType string) ([]byte, string, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, body)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Error calling image service", "path", path, "err", err)
		return nil, "", fmt.Errorf("Error calling image service: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return responseBody, resp.Header.Get("Content-Type"), nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidImage, strings.TrimSpace(string(responseBody)))
	default:
		s.logger.Error("Error making image service call", "path", path, "status", resp.Status)
		return nil, "", fmt.Errorf("image service returned %s", resp.Status)
	}
}
