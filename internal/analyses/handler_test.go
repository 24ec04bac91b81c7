package analyses

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/engine"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/suggestions"
)

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(svc *Service, maxUpload int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(svc, maxUpload).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, resp.Body.String())
	}
	return env.Error.Code
}

func TestAnalyzeResumeEndpoint(t *testing.T) {
	r := newTestRouter(newTestService(nil), 0)
	body, _ := json.Marshal(map[string]string{"resumeText": sampleResume})

	resp := postJSON(r, "/api/v1/analyze-resume", string(body), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result engine.AnalysisResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(result.Categories))
	}
}

func TestAnalyzeResumeRejectsBadInput(t *testing.T) {
	r := newTestRouter(newTestService(nil), 0)
	for _, body := range []string{`{}`, `{"resumeText": 42}`, `{"resumeText": "   "}`, `not json`} {
		resp := postJSON(r, "/api/v1/analyze-resume", body, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != ErrorCodeInvalidInput {
			t.Fatalf("body %s: expected invalid_input, got %q", body, code)
		}
	}
}

func TestResumeSuggestionsEndpoint(t *testing.T) {
	gen := &stubGenerator{items: []suggestions.Suggestion{{Category: "Metrics Focus", Title: "Quantify"}}}
	r := newTestRouter(newTestService(gen), 0)

	resp := postJSON(r, "/api/v1/resume-suggestions", `{"resumeText":"Go developer"}`, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var items []suggestions.Suggestion
	if err := json.Unmarshal(resp.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode suggestions: %v", err)
	}
	if len(items) != 1 || items[0].ID == "" {
		t.Fatalf("unexpected suggestions: %+v", items)
	}
}

func TestReviewEndpointSavesWithIdentity(t *testing.T) {
	r := newTestRouter(newTestService(&stubGenerator{}), 0)
	body, _ := json.Marshal(map[string]any{"resumeText": sampleResume, "fileName": "jane.pdf", "save": true})

	resp := postJSON(r, "/api/v1/review", string(body), map[string]string{"X-Guest-Id": "g1"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out Review
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode review: %v", err)
	}
	if out.HistoryID == "" || out.Analysis.OverallScore == 0 {
		t.Fatalf("unexpected review: %+v", out)
	}

	resp = postJSON(r, "/api/v1/review", string(body), nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}
}

func multipartBody(t *testing.T, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postFile(r http.Handler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-file", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestParseFileEndpoint(t *testing.T) {
	r := newTestRouter(newTestService(nil), 1024)

	body, ct := multipartBody(t, "cv.txt", "text/plain", []byte("Go developer"))
	resp := postFile(r, body, ct)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var parsed ParsedFile
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode parsed: %v", err)
	}
	if parsed.Text != "Go developer" || parsed.FileName != "cv.txt" {
		t.Fatalf("unexpected parsed file: %+v", parsed)
	}
}

func TestParseFileEndpointErrors(t *testing.T) {
	r := newTestRouter(newTestService(nil), 1024)

	body, ct := multipartBody(t, "photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
	resp := postFile(r, body, ct)
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.Code)
	}

	body, ct = multipartBody(t, "big.txt", "text/plain", bytes.Repeat([]byte("a"), 2048))
	resp = postFile(r, body, ct)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}

	body, ct = multipartBody(t, "empty.txt", "text/plain", []byte(" \n "))
	resp = postFile(r, body, ct)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-file", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d", rec.Code)
	}
}
