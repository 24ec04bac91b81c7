package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/telemetry"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r http.Handler, method, path, guest string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if guest != "" {
		req.Header.Set("X-Guest-Id", guest)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHistoryRoutesRequireIdentity(t *testing.T) {
	r := newTestRouter(newTestService(0))
	resp := doRequest(r, http.MethodGet, "/api/v1/history", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestHistoryListGetFavoriteDelete(t *testing.T) {
	svc := newTestService(0)
	r := newTestRouter(svc)
	entry, err := svc.Save(context.Background(), "guest:g1", "cv.pdf", analysisWithScore(75))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	resp := doRequest(r, http.MethodGet, "/api/v1/history", "g1")
	if resp.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d", resp.Code)
	}
	var list struct {
		Items []Entry `json:"items"`
		Count int     `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Count != 1 || list.Items[0].ID != entry.ID || list.Items[0].Score.OverallScoreRange != RangeGood {
		t.Fatalf("unexpected list: %+v", list)
	}

	resp = doRequest(r, http.MethodGet, "/api/v1/history/"+entry.ID, "g2")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("other owner expected 404, got %d", resp.Code)
	}

	resp = doRequest(r, http.MethodPost, "/api/v1/history/"+entry.ID+"/favorite", "g1")
	if resp.Code != http.StatusOK {
		t.Fatalf("favorite expected 200, got %d", resp.Code)
	}
	var fav Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &fav); err != nil {
		t.Fatalf("decode favorite: %v", err)
	}
	if !fav.IsFavorite {
		t.Fatalf("expected favorite set")
	}

	resp = doRequest(r, http.MethodDelete, "/api/v1/history/"+entry.ID, "g1")
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete expected 204, got %d", resp.Code)
	}
	resp = doRequest(r, http.MethodGet, "/api/v1/history/"+entry.ID, "g1")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete expected 404, got %d", resp.Code)
	}
}

func TestHistoryExportAndClear(t *testing.T) {
	svc := newTestService(0)
	r := newTestRouter(svc)
	for i := 0; i < 2; i++ {
		if _, err := svc.Save(context.Background(), "guest:g1", "", analysisWithScore(40)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	resp := doRequest(r, http.MethodGet, "/api/v1/history/export", "g1")
	if resp.Code != http.StatusOK {
		t.Fatalf("export expected 200, got %d", resp.Code)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "resume_analysis_history_") {
		t.Fatalf("unexpected Content-Disposition %q", cd)
	}
	var doc Export
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.Count != 2 {
		t.Fatalf("expected 2 exported entries, got %d", doc.Count)
	}

	resp = doRequest(r, http.MethodDelete, "/api/v1/history", "g1")
	if resp.Code != http.StatusOK {
		t.Fatalf("clear expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"removed":2`) {
		t.Fatalf("unexpected clear body %s", resp.Body.String())
	}
}

type failingRepo struct {
	MemoryRepo
	err error
}

func (f *failingRepo) List(context.Context, string) ([]Entry, error) { return nil, f.err }

func TestHistoryStorageErrorsAreNotExposed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	restore := telemetry.SetOutput(&logs)
	defer restore()

	repo := &failingRepo{err: errors.New(`pq: relation "resume_history" does not exist`)}
	r := newTestRouter(NewService(repo, 0))

	resp := doRequest(r, http.MethodGet, "/api/v1/history", "g1")
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "resume_history") {
		t.Fatalf("storage error leaked to client: %s", resp.Body.String())
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "internal" || body.Error.Details != nil {
		t.Fatalf("unexpected error body %+v", body.Error)
	}
	if !strings.Contains(logs.String(), "resume_history") {
		t.Fatalf("expected the storage error to be logged")
	}
}
