package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"asetta-mcp/logging"
)

func TestCreateProject(t *testing.T) {
	var gotPath, gotKey string
	var gotBody CreateProjectRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotKey = r.Header.Get("X-Access-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(Project{ID: "prj-1", Name: gotBody.Name, Status: StatusPrepare})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", logging.Nop())
	project, err := client.CreateProject(context.Background(), CreateProjectRequest{
		Name:     "Manhattan Tower",
		Category: "real-estate",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if gotPath != "POST /api/project" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("access key header missing, got %q", gotKey)
	}
	if gotBody.Name != "Manhattan Tower" || gotBody.Category != "real-estate" {
		t.Fatalf("body not mapped: %+v", gotBody)
	}
	if project.ID != "prj-1" || project.Status != StatusPrepare {
		t.Fatalf("response not mapped: %+v", project)
	}
}

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != StatusActive {
			t.Errorf("status query not forwarded: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]Project{{ID: "a"}, {ID: "b"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", logging.Nop())
	projects, err := client.ListProjects(context.Background(), StatusActive)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
}

func TestUpdateProject(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/api/project/prj-9" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			json.NewEncoder(w).Encode(Project{ID: "prj-9", Status: StatusActive})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "k", logging.Nop())
		project, err := client.UpdateProject(context.Background(), "prj-9", UpdateProjectRequest{Status: StatusActive})
		if err != nil {
			t.Fatalf("UpdateProject: %v", err)
		}
		if project.Status != StatusActive {
			t.Fatalf("unexpected project: %+v", project)
		}
	})

	t.Run("invalid_status_rejected_client_side", func(t *testing.T) {
		client := NewClient("http://unreachable.invalid", "k", logging.Nop())
		if _, err := client.UpdateProject(context.Background(), "prj-9", UpdateProjectRequest{Status: "LIVE"}); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("empty_id", func(t *testing.T) {
		client := NewClient("http://unreachable.invalid", "k", logging.Nop())
		if _, err := client.UpdateProject(context.Background(), " ", UpdateProjectRequest{}); err == nil {
			t.Fatal("expected error for empty id")
		}
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("sends_access_key_query", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/profile" || r.URL.Query().Get("access_key") != "secret" {
				t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode(Profile{ID: "u1", DisplayName: "Agent"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "secret", logging.Nop())
		profile, err := client.GetProfile(context.Background())
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if profile.ID != "u1" {
			t.Fatalf("unexpected profile: %+v", profile)
		}
	})

	t.Run("requires_access_key", func(t *testing.T) {
		client := NewClient("http://unreachable.invalid", "", logging.Nop())
		if _, err := client.GetProfile(context.Background()); err == nil {
			t.Fatal("expected error without access key")
		}
	})
}

func TestBackendErrors(t *testing.T) {
	t.Run("error_body_surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "access key revoked"})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "k", logging.Nop())
		_, err := client.ListProjects(context.Background(), "")
		if err == nil {
			t.Fatal("expected error")
		}
		want := "backend returned 403: access key revoked"
		if err.Error() != want {
			t.Fatalf("error = %q, want %q", err.Error(), want)
		}
	})

	t.Run("plain_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "k", logging.Nop())
		if _, err := client.ListProjects(context.Background(), ""); err == nil {
			t.Fatal("expected error for 502")
		}
	})
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses() {
		if !ValidStatus(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	for _, s := range []string{"", "prepare", "LIVE", "DONE"} {
		if ValidStatus(s) {
			t.Fatalf("%s should be invalid", s)
		}
	}
}
