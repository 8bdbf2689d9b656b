package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vmihiranga/digizigtool/internal/extractor"
	"github.com/vmihiranga/digizigtool/pkg/types"
)

type stubExtractor struct {
	download       func(ctx context.Context, url string) (*types.DownloadResult, error)
	stories        func(ctx context.Context, username string) (*types.StoryResult, error)
	searchUsers    func(ctx context.Context, query string) (*types.UserSearchResult, error)
	searchHashtags func(ctx context.Context, query string) (*types.HashtagSearchResult, error)
	stalk          func(ctx context.Context, username string) (*types.Profile, error)
}

func (s *stubExtractor) Download(ctx context.Context, url string) (*types.DownloadResult, error) {
	return s.download(ctx, url)
}

func (s *stubExtractor) Stories(ctx context.Context, username string) (*types.StoryResult, error) {
	return s.stories(ctx, username)
}

func (s *stubExtractor) SearchUsers(ctx context.Context, query string) (*types.UserSearchResult, error) {
	return s.searchUsers(ctx, query)
}

func (s *stubExtractor) SearchHashtags(ctx context.Context, query string) (*types.HashtagSearchResult, error) {
	return s.searchHashtags(ctx, query)
}

func (s *stubExtractor) Stalk(ctx context.Context, username string) (*types.Profile, error) {
	return s.stalk(ctx, username)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestDownloadEndpoint(t *testing.T) {
	stub := &stubExtractor{
		download: func(_ context.Context, url string) (*types.DownloadResult, error) {
			if url != "https://www.instagram.com/p/ABC123/" {
				t.Fatalf("url = %q", url)
			}
			return &types.DownloadResult{Author: "chef", Media: []types.MediaItem{}}, nil
		},
	}
	server := NewServer(stub, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/download",
		strings.NewReader(`{"url": "https://www.instagram.com/p/ABC123/"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["author"] != "chef" {
		t.Fatalf("data = %v", body["data"])
	}
}

func TestDownloadInvalidJSON(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "Invalid JSON payload" {
		t.Fatalf("body = %v", body)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"input", &extractor.InputError{Msg: "Invalid Instagram URL provided"}, 400, "Invalid Instagram URL provided"},
		{"not found", &extractor.NotFoundError{Msg: "No stories found or user not found"}, 404, "No stories found or user not found"},
		{"exhausted fallback", &extractor.ExhaustedError{Fallback: "All APIs failed to fetch content"}, 500, "All APIs failed to fetch content"},
		{"exhausted last error", &extractor.ExhaustedError{LastErr: errors.New("dial tcp: refused")}, 500, "dial tcp: refused"},
		{"unexpected", errors.New("database on fire"), 500, "Internal server error"},
		{"cancelled", context.Canceled, 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubExtractor{
				download: func(context.Context, string) (*types.DownloadResult, error) {
					return nil, tt.err
				},
			}
			server := NewServer(stub, nil, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(`{"url": "x"}`))
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["success"] != false || body["error"] != tt.wantMsg {
				t.Fatalf("body = %v", body)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	for _, path := range []string{"/api/download", "/api/stories", "/api/search/users", "/api/search/hashtags", "/api/stalk"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: status = %d, want 405", path, rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
			t.Fatalf("%s: allow = %q", path, allow)
		}
	}
}

func TestStoriesEndpoint(t *testing.T) {
	stub := &stubExtractor{
		stories: func(_ context.Context, username string) (*types.StoryResult, error) {
			return &types.StoryResult{Username: username, Stories: []types.StoryItem{}, Count: 0}, nil
		},
	}
	server := NewServer(stub, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stories", strings.NewReader(`{"username": "zoe"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	if data["username"] != "zoe" {
		t.Fatalf("data = %v", data)
	}
}

func TestStalkEndpoint(t *testing.T) {
	followers := int64(100)
	stub := &stubExtractor{
		stalk: func(_ context.Context, username string) (*types.Profile, error) {
			return &types.Profile{Username: username, FollowerCount: &followers, DataSource: "vreden"}, nil
		},
	}
	server := NewServer(stub, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stalk", strings.NewReader(`{"username": "zoe"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	if data["username"] != "zoe" || data["dataSource"] != "vreden" {
		t.Fatalf("data = %v", data)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestLandingPage(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/api/download") {
		t.Fatal("landing page should list the endpoints")
	}
}

func TestUnknownPath(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPanicRecovery(t *testing.T) {
	stub := &stubExtractor{
		download: func(context.Context, string) (*types.DownloadResult, error) {
			panic("handler blew up")
		},
	}
	server := NewServer(stub, nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/download", strings.NewReader(`{"url": "x"}`))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Internal server error" {
		t.Fatalf("body = %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := extractor.NewMetrics()
	server := NewServer(&stubExtractor{}, metrics, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpointAbsentWithoutMetrics(t *testing.T) {
	server := NewServer(&stubExtractor{}, nil, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
