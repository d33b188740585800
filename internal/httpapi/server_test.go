package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dir, err := os.MkdirTemp("", "go_recruiter_test")
	if err != nil {
		panic(err)
	}
	engine.Init(engine.Config{DataDir: dir, MaxUploadBytes: 1 << 20})
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := NewRouter()

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "llm_calls") {
		t.Errorf("metrics body = %q", w.Body.String())
	}
}

func TestServeUI(t *testing.T) {
	r := NewRouter()

	w := doJSON(t, r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ui status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Job Search Assistant") {
		t.Error("expected embedded UI page")
	}
}

func TestApplicationsCRUD(t *testing.T) {
	r := NewRouter()

	// Create.
	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", engine.ApplicationAddInput{
		Company:  "Stripe",
		Position: "Go Developer",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID <= 0 || created.Status != "applied" {
		t.Fatalf("created = %+v", created)
	}

	// Validation error.
	w = doJSON(t, r, http.MethodPost, "/api/v1/applications", engine.ApplicationAddInput{Company: "NoPosition"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create without position status = %d", w.Code)
	}

	// List.
	w = doJSON(t, r, http.MethodGet, "/api/v1/applications?status=applied", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total < 1 {
		t.Errorf("list total = %d, want >= 1", list.Total)
	}

	// Get by id.
	w = doJSON(t, r, http.MethodGet, "/api/v1/applications/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	var fetched struct {
		Company string `json:"company"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.Company != "Stripe" {
		t.Errorf("fetched company = %q", fetched.Company)
	}

	// Get unknown id.
	w = doJSON(t, r, http.MethodGet, "/api/v1/applications/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get unknown id status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/v1/applications/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("get bad id status = %d", w.Code)
	}

	// Update.
	w = doJSON(t, r, http.MethodPatch, "/api/v1/applications/1", engine.ApplicationUpdateInput{Status: "interview"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	// Update unknown id.
	w = doJSON(t, r, http.MethodPatch, "/api/v1/applications/9999", engine.ApplicationUpdateInput{Status: "interview"})
	if w.Code != http.StatusNotFound {
		t.Errorf("update unknown id status = %d", w.Code)
	}

	// Follow-up.
	w = doJSON(t, r, http.MethodPost, "/api/v1/applications/1/followups", map[string]string{"note": "pinged recruiter"})
	if w.Code != http.StatusOK {
		t.Errorf("followup status = %d, body = %s", w.Code, w.Body.String())
	}

	// Stats.
	w = doJSON(t, r, http.MethodGet, "/api/v1/applications/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats engine.ApplicationStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total < 1 {
		t.Errorf("stats total = %d", stats.Total)
	}

	// Delete.
	w = doJSON(t, r, http.MethodDelete, "/api/v1/applications/1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/v1/applications/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestResumeUploadAndFetch(t *testing.T) {
	r := NewRouter()

	// No resume yet for this session.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/resume", nil)
	req.Header.Set("X-Session-ID", "upload-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get before upload status = %d", w.Code)
	}

	// Upload a plain-text resume.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("SKILLS\nGo, Docker\n\nEXPERIENCE\nDev at Acme 2020 - 2023\n"))
	mw.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/v1/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Session-ID", "upload-test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	// Fetch it back.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/resume", nil)
	req.Header.Set("X-Session-ID", "upload-test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get after upload status = %d", w.Code)
	}
	var record engine.ResumeRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatal(err)
	}
	if len(record.Skills) != 2 {
		t.Errorf("skills = %v, want [Go Docker]", record.Skills)
	}
}

// uploadText posts a one-file multipart form to the resume endpoint.
func uploadText(t *testing.T, r *gin.Engine, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Session-ID", "limits-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResumeUploadLimits(t *testing.T) {
	old := *engine.Cfg
	defer engine.Init(old)
	r := NewRouter()

	// Oversize upload is rejected before parsing.
	engine.Init(engine.Config{DataDir: old.DataDir, MaxUploadBytes: 16})
	w := uploadText(t, r, "big.txt", strings.Repeat("x", 64))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversize status = %d, body = %s", w.Code, w.Body.String())
	}

	// An unset limit falls back to the default instead of truncating the
	// read to a single byte.
	engine.Init(engine.Config{DataDir: old.DataDir})
	w = uploadText(t, r, "resume.txt", "SKILLS\nGo, Docker\n")
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Skills) != 2 {
		t.Errorf("skills = %v, want both parsed", body.Skills)
	}
}

func TestResearchInvalidate(t *testing.T) {
	r := NewRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/research/Acme", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("invalidate status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestChatHistoryEndpoint(t *testing.T) {
	r := NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/history?session_id=nobody", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Messages []engine.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Messages) != 0 {
		t.Errorf("messages = %v, want empty", body.Messages)
	}
}

func TestChatRequiresMessage(t *testing.T) {
	r := NewRouter()

	w := doJSON(t, r, http.MethodPost, "/api/v1/chat", map[string]string{"session_id": "s"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message status = %d", w.Code)
	}
}
