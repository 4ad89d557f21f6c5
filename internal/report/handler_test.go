package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Octopus30/health-analysis/internal/llm"
)

func setupTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc)
	r.POST("/reports/upload", h.Upload)
	r.POST("/reports/:id/extract", h.Extract)
	r.POST("/reports/:id/analyze", h.Analyze)
	r.GET("/reports/:id", h.Get)
	r.GET("/reports/:id/status", h.GetStatus)

	return r
}

func multipartUpload(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("report_file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("file contents")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return body, w.FormDataContentType()
}

func TestUploadEndpoint_InitialStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, newFakeStorage(), &fakeExtractor{}, &fakeInvoker{})
	router := setupTestRouter(svc)

	body, contentType := multipartUpload(t, "scan.png")
	req := httptest.NewRequest(http.MethodPost, "/reports/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	id := int(resp["id"].(float64))
	rep, err := repo.Get(req.Context(), id)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Status != StatusUploaded {
		t.Fatalf("expected UPLOADED, got %s", rep.Status)
	}
}

func TestUploadEndpoint_UnsupportedExtension(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), newFakeStorage(), &fakeExtractor{}, &fakeInvoker{})
	router := setupTestRouter(svc)

	body, contentType := multipartUpload(t, "notes.txt")
	req := httptest.NewRequest(http.MethodPost, "/reports/upload", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), newFakeStorage(), &fakeExtractor{}, &fakeInvoker{})
	router := setupTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/reports/upload", &bytes.Buffer{})
	req.Header.Set("Content-Type", "multipart/form-data")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestExtractEndpoint_ReturnsRows(t *testing.T) {
	repo := NewInMemoryRepository()
	extractor := &fakeExtractor{lines: []string{"Hemoglobin 13.5 g/dL"}}
	invoker := &fakeInvoker{results: []llm.ChunkResult{successResult(cbcPayload)}}
	svc := NewService(repo, newFakeStorage(), extractor, invoker)
	router := setupTestRouter(svc)

	body, contentType := multipartUpload(t, "scan.png")
	req := httptest.NewRequest(http.MethodPost, "/reports/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var created map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	id := int(created["id"].(float64))

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reports/%d/extract", id), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status   string `json:"status"`
		RowCount int    `json:"row_count"`
		Rows     []Row  `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != string(StatusDone) {
		t.Errorf("expected DONE, got %s", resp.Status)
	}
	if resp.RowCount != 2 || len(resp.Rows) != 2 {
		t.Errorf("expected 2 rows, got count=%d len=%d", resp.RowCount, len(resp.Rows))
	}
}

func TestStatusEndpoint_UnknownReport(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), newFakeStorage(), &fakeExtractor{}, &fakeInvoker{})
	router := setupTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/42/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
