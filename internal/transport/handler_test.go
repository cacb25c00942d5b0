package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/config"
	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
)

// stubService returns canned responses so handler behavior can be tested
// without touching the analyzer or the engine.
type stubService struct {
	analyzeResp   *models.AnalyzeResponse
	transformResp *models.TransformResponse
	batchResp     *models.BatchResponse
	history       []models.HistoryEntry
	report        *models.OperationReport
	err           error
}

func (s *stubService) Analyze(ctx context.Context, imageURL string, baseKey int) (*models.AnalyzeResponse, error) {
	return s.analyzeResp, s.err
}

func (s *stubService) Transform(ctx context.Context, imageURL string, key int, method string, decrypt bool) (*models.TransformResponse, error) {
	return s.transformResp, s.err
}

func (s *stubService) Batch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	return s.batchResp, s.err
}

func (s *stubService) History(ctx context.Context) ([]models.HistoryEntry, error) {
	return s.history, s.err
}

func (s *stubService) ClearHistory(ctx context.Context) error {
	return s.err
}

func (s *stubService) Report(ctx context.Context, recordID string) (*models.OperationReport, error) {
	return s.report, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:     5 * time.Second,
		TransformTimeout:   10 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

func serve(t *testing.T, svc *stubService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc, testConfig())

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := serve(t, &stubService{}, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "available" {
		t.Errorf("Unexpected status %q", body["status"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	svc := &stubService{
		analyzeResp: &models.AnalyzeResponse{
			ImageURL:          "https://img.test/a.png",
			RecommendedMethod: models.MethodAES,
			BaseKey:           10,
			SmartKey:          232,
		},
	}

	w := serve(t, svc, http.MethodPost, "/analyze", `{"url":"https://img.test/a.png","base_key":10}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.SmartKey != 232 || resp.RecommendedMethod != models.MethodAES {
		t.Errorf("Response lost fields: %+v", resp)
	}
}

func TestAnalyzeEndpoint_MalformedJSON(t *testing.T) {
	w := serve(t, &stubService{}, http.MethodPost, "/analyze", `{"url":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", w.Code)
	}
}

func TestEncryptEndpoint_ErrorMapping(t *testing.T) {
	svc := &stubService{err: apperrors.NewInvalidKeyError(0)}

	w := serve(t, svc, http.MethodPost, "/encrypt", `{"url":"https://img.test/a.png","key":300,"method":"xor"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid key, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON error body: %v", err)
	}
	if resp.Message == "" {
		t.Error("Expected an error message")
	}
}

func TestReportEndpoint_TextFormat(t *testing.T) {
	svc := &stubService{
		report: &models.OperationReport{
			RecordID: "op-1",
			Label:    "Encrypted with xor",
			Method:   models.MethodXOR,
			Key:      42,
			Width:    10,
			Height:   10,
			Channels: 4,
		},
	}

	w := serve(t, svc, http.MethodGet, "/report/op-1?format=text", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Method: xor") {
		t.Errorf("Text report missing method line: %s", w.Body.String())
	}
}

func TestReportEndpoint_NotFound(t *testing.T) {
	svc := &stubService{err: apperrors.NewNotFoundError("record", nil)}

	w := serve(t, svc, http.MethodGet, "/report/op-999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	svc := &stubService{
		history: []models.HistoryEntry{
			{ID: "op-2", Label: "Encrypted with aes", Method: models.MethodAES, Key: 77},
		},
	}

	w := serve(t, svc, http.MethodGet, "/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body struct {
		Operations []models.HistoryEntry `json:"operations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(body.Operations) != 1 || body.Operations[0].ID != "op-2" {
		t.Errorf("Unexpected history payload: %+v", body.Operations)
	}

	w = serve(t, svc, http.MethodDelete, "/history", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
}
