package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/config"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/core"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/jobstore"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/source"
)

const testToken = "test-token$%^"

const testXML = `<hierarchy rotation="0">
  <android.widget.LinearLayout resource-id="com.app:id/list" class="android.widget.LinearLayout">
    <android.widget.TextView text="Data 10GB" class="android.widget.TextView"/>
    <android.widget.TextView text="Unlimited calls" class="android.widget.TextView"/>
    <android.widget.Button resource-id="com.app:id/buy" text="Buy" clickable="true"/>
    <android.widget.Button resource-id="com.app:id/buy" text="Buy" clickable="true"/>
  </android.widget.LinearLayout>
</hierarchy>`

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// fakeFetcher serves documents and images from maps.
type fakeFetcher struct {
	docs   map[string]string
	images map[string][]byte
}

func (f *fakeFetcher) FetchDocument(_ context.Context, location string) (string, error) {
	doc, ok := f.docs[location]
	if !ok {
		return "", core.ErrFetchFailed.WithMessage("Could not fetch XML").WithCause(errors.New("server error 404"))
	}
	return doc, nil
}

func (f *fakeFetcher) FetchImage(_ context.Context, location string) ([]byte, error) {
	img, ok := f.images[location]
	if !ok {
		return nil, core.ErrFetchFailed.WithMessage("Could not fetch image").WithCause(errors.New("server error 404"))
	}
	if !source.IsImage(img) {
		return nil, core.ErrInvalidImage
	}
	return img, nil
}

func newTestServer(t *testing.T) (*Server, jobstore.Store) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.AuthToken = testToken
	cfg.Server.MaxBodyBytes = 4096

	store := jobstore.NewMemoryStore(time.Hour)
	fetcher := &fakeFetcher{
		docs: map[string]string{
			"http://device/source":    testXML,
			"http://device/broken":    "<hierarchy><node></hierarchy>",
			"http://device/empty.xml": "",
		},
		images: map[string][]byte{
			"http://device/screenshot": pngBytes,
			"http://device/text.png":   []byte("not an image"),
		},
	}
	return New(*cfg, store, fetcher, analyzer.New(analyzer.DefaultOptions())), store
}

func do(t *testing.T, s *Server, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return m
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	if rec.Code != code {
		t.Errorf("status = %d, want %d (body %s)", rec.Code, code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["error"]; got != msg {
		t.Errorf("error = %q, want %q", got, msg)
	}
}

func kickoff(t *testing.T, s *Server, body string) string {
	t.Helper()
	rec := do(t, s, "POST", "/kickoff", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("kickoff status = %d, body %s", rec.Code, rec.Body.String())
	}
	id, _ := decodeBody(t, rec)["kickoff_id"].(string)
	if id == "" {
		t.Fatalf("expected kickoff_id in %s", rec.Body.String())
	}
	return id
}

func TestHealth_NoAuth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "GET", "/health", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		header string
		code   int
		msg    string
	}{
		{"missing", "", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Missing or invalid Authorization header"},
		{"wrong token", "Bearer nope", http.StatusForbidden, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/status/abc", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			expectError(t, rec, tt.code, tt.msg)
		})
	}
}

func TestKickoff_ThenStatus(t *testing.T) {
	s, store := newTestServer(t)

	id := kickoff(t, s, `{"image_url":"http://device/screenshot","xml_url":"http://device/source"}`)

	job, err := store.Get(id)
	if err != nil {
		t.Fatalf("job not stored: %v", err)
	}
	if job.XMLURL != "http://device/source" || job.Summary == nil {
		t.Errorf("unexpected job %+v", job)
	}

	rec := do(t, s, "GET", "/status/"+id, "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.KickoffID != id || resp.State != "SUCCESS" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if resp.Data.TotalElements != 6 {
		t.Errorf("TotalElements = %d, want 6", resp.Data.TotalElements)
	}
	if len(resp.Data.SuggestedXPathExamples) == 0 {
		t.Error("expected suggested xpath examples")
	}
	if len(resp.Data.ElementsWithDuplicates) != 2 {
		t.Errorf("expected 2 duplicate-id elements, got %d", len(resp.Data.ElementsWithDuplicates))
	}
	if resp.ImageAnalysis != (source.ImageAnalysis{}) {
		t.Errorf("expected zero image analysis, got %+v", resp.ImageAnalysis)
	}
}

func TestKickoff_NestedInputs(t *testing.T) {
	s, _ := newTestServer(t)

	kickoff(t, s, `{"inputs":{"image_url":"http://device/screenshot","xml_url":"http://device/source"}}`)
}

func TestKickoff_Base64Image(t *testing.T) {
	s, store := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"base64image": base64.StdEncoding.EncodeToString(pngBytes),
		"xml_url":     "http://device/source",
	})
	id := kickoff(t, s, string(body))

	job, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if job.ImageURL != "" {
		t.Errorf("expected no image url, got %q", job.ImageURL)
	}
}

func TestKickoff_Errors(t *testing.T) {
	s, store := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"missing xml", `{"image_url":"http://device/screenshot"}`, http.StatusBadRequest, "image_url and xml_url are required"},
		{"missing image", `{"xml_url":"http://device/source"}`, http.StatusBadRequest, "image_url and xml_url are required"},
		{"empty nested", `{"inputs":{}}`, http.StatusBadRequest, "image_url and xml_url are required"},
		{"invalid image", `{"image_url":"http://device/text.png","xml_url":"http://device/source"}`, http.StatusBadRequest, core.ErrInvalidImage.Message},
		{"invalid base64", `{"base64image":"aGVsbG8=","xml_url":"http://device/source"}`, http.StatusBadRequest, core.ErrInvalidImage.Message},
		{"xml fetch failed", `{"image_url":"http://device/screenshot","xml_url":"http://device/missing"}`, http.StatusBadGateway, "Could not fetch XML: server error 404"},
		{"image fetch failed", `{"image_url":"http://device/missing.png","xml_url":"http://device/source"}`, http.StatusBadGateway, "Could not fetch image: server error 404"},
		{"malformed xml", `{"image_url":"http://device/screenshot","xml_url":"http://device/broken"}`, http.StatusUnprocessableEntity, "Malformed XML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, "POST", "/kickoff", tt.body, true)
			expectError(t, rec, tt.code, tt.msg)
		})
	}

	if store.Len() != 0 {
		t.Errorf("failed kickoffs must not be stored, got %d jobs", store.Len())
	}
}

func TestKickoff_InvalidJSON(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "POST", "/kickoff", `{not json`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestKickoff_BodyTooLarge(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"xml_url":"` + strings.Repeat("a", 5000) + `"}`
	rec := do(t, s, "POST", "/kickoff", body, true)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestKickoff_EmptyDocument(t *testing.T) {
	s, store := newTestServer(t)

	id := kickoff(t, s, `{"image_url":"http://device/screenshot","xml_url":"http://device/empty.xml"}`)
	job, err := store.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if job.Summary.TotalElements != 0 {
		t.Errorf("expected empty summary, got %d elements", job.Summary.TotalElements)
	}
}

func TestStatus_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "GET", "/status/unknown", "", true)
	expectError(t, rec, http.StatusNotFound, "kickoff_id not found")
}

func TestStatus_Top(t *testing.T) {
	s, _ := newTestServer(t)
	id := kickoff(t, s, `{"image_url":"http://device/screenshot","xml_url":"http://device/source"}`)

	rec := do(t, s, "GET", "/status/"+id+"?top=1", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	for _, ex := range resp.Data.SuggestedXPathExamples {
		if len(ex.Suggestions) > 1 {
			t.Errorf("expected at most 1 suggestion, got %d for %s", len(ex.Suggestions), ex.OriginalXPath)
		}
	}

	for _, bad := range []string{"0", "-2", "abc"} {
		rec := do(t, s, "GET", "/status/"+id+"?top="+bad, "", true)
		expectError(t, rec, http.StatusBadRequest, "top must be a positive integer")
	}
}

func TestAnalyze(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, "POST", "/analyze", testXML, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var summary analyzer.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TotalElements != 6 || summary.ElementsWithResourceID != 3 {
		t.Errorf("unexpected summary counts %+v", summary)
	}
	if store.Len() != 0 {
		t.Error("analyze must not store jobs")
	}
}

func TestAnalyze_Malformed(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "POST", "/analyze", "<hierarchy>", true)
	expectError(t, rec, http.StatusUnprocessableEntity, "Malformed XML")
}

func TestAnalyze_TooLarge(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "POST", "/analyze", "<a>"+strings.Repeat("x", 5000)+"</a>", true)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestNotFoundRoute(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "GET", "/nope", "", true)
	expectError(t, rec, http.StatusNotFound, "not found")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{core.ErrMissingInput, http.StatusBadRequest},
		{core.ErrMalformedDocument.WithCause(errors.New("eof")), http.StatusUnprocessableEntity},
		{core.ErrFetchFailed, http.StatusBadGateway},
		{core.ErrJobNotFound, http.StatusNotFound},
		{core.ErrUnauthenticated, http.StatusUnauthorized},
		{core.ErrForbidden, http.StatusForbidden},
		{core.ErrInvalidConfig, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if code, _ := statusFor(tt.err); code != tt.code {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, code, tt.code)
		}
	}
}

// End to end with the real fetcher against a UIAutomator2-style endpoint.
func TestWriteError_LogsCategory(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.Close()
	}()

	rec := httptest.NewRecorder()
	writeError(rec, core.ErrMissingInput)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(buf.String(), "[input/missing_input]") {
		t.Errorf("expected category and code in log, got %q", buf.String())
	}
}

func TestKickoff_WithSourceFetcher(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"value": testXML})
	}))
	defer device.Close()

	cfg := config.Default()
	cfg.Server.AuthToken = testToken
	store := jobstore.NewMemoryStore(time.Hour)
	s := New(*cfg, store, source.NewFetcher(source.Options{Timeout: 5 * time.Second}), analyzer.New(analyzer.DefaultOptions()))

	body, _ := json.Marshal(map[string]string{
		"image_url": "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
		"xml_url":   device.URL + "/session/1/source",
	})
	req := httptest.NewRequest("POST", "/kickoff", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored job, got %d", store.Len())
	}
}
