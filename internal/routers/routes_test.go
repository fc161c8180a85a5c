package routers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"interviewprep/backend/internal/handlers"
	"interviewprep/backend/internal/repositories"
	"interviewprep/backend/internal/testhelpers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testhelpers.SetupTestDB(t)
	userHandler := &handlers.UserHandler{Repo: &repositories.UserRepository{DB: db}}
	interviewHandler := &handlers.InterviewHandler{Repo: &repositories.InterviewRepository{DB: db}}

	r := chi.NewRouter()
	HealthRoutes(r)
	r.Route("/api/v1", func(api chi.Router) {
		HealthRoutes(api)
		UserRoutes(api, userHandler)
		InterviewRoutes(api, interviewHandler)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, client *http.Client, method, url, body string) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestHealthRoutes(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		resp := do(t, server.Client(), http.MethodGet, server.URL+path, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		resp.Body.Close()
		if body["status"] != "ok" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}

// Walks a user through its whole lifecycle over real routes.
func TestUserLifecycleOverHTTP(t *testing.T) {
	server := newTestServer(t)
	client := server.Client()
	base := server.URL + "/api/v1"

	resp := do(t, client, http.MethodPost, base+"/users", `{"email":"a@x.com"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	resp.Body.Close()
	if created["id"] != float64(1) || created["email"] != "a@x.com" || created["google_sub"] != nil {
		t.Fatalf("unexpected create body: %v", created)
	}

	resp = do(t, client, http.MethodPost, base+"/users", `{"email":"a@x.com"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", resp.StatusCode)
	}

	resp = do(t, client, http.MethodGet, base+"/users/1", "")
	var fetched map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || fetched["email"] != "a@x.com" {
		t.Fatalf("get: expected same body, got %d %v", resp.StatusCode, fetched)
	}

	resp = do(t, client, http.MethodPatch, base+"/users/1", `{"google_sub":"sub-1"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", resp.StatusCode)
	}

	resp = do(t, client, http.MethodDelete, base+"/users/1", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}

	resp = do(t, client, http.MethodGet, base+"/users/1", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestInterviewRoutesWired(t *testing.T) {
	server := newTestServer(t)
	client := server.Client()
	base := server.URL + "/api/v1"

	resp := do(t, client, http.MethodPost, base+"/interviews", `{"user_id":1,"company":"Acme","type":"coding"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = do(t, client, http.MethodGet, base+"/interviews?user_id=1", "")
	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || len(list) != 1 {
		t.Fatalf("list: expected 1 row, got %d rows (status %d)", len(list), resp.StatusCode)
	}

	resp = do(t, client, http.MethodPatch, base+"/interviews/1", `{"role":"SWE"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", resp.StatusCode)
	}

	resp = do(t, client, http.MethodDelete, base+"/interviews/1", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}

	resp = do(t, client, http.MethodGet, base+"/interviews/1", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.StatusCode)
	}
}
