package fixture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleFixture = `{
  "users": [
    {"id": "u1", "username": "alice", "password": "alice123", "email": "alice@example.com", "role": "user", "status": "active", "joined": "2024-01-10", "enrolledCourses": ["c1"]},
    {"id": "f1", "username": "prof", "password": "prof123", "email": "prof@example.com", "role": "faculty", "status": "active", "joined": "2024-01-02"}
  ],
  "courses": [
    {"id": "c1", "title": "Go Basics", "category": "Programming", "price": "19.99", "status": "Published", "instructorId": "f1", "instructorName": "prof"}
  ],
  "siteStats": {"totalRevenue": 1234.5}
}`

func TestSource_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(sampleFixture), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := NewSource(path, time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Users) != 2 || len(f.Courses) != 1 {
		t.Fatalf("got %d users, %d courses", len(f.Users), len(f.Courses))
	}
	if f.Users[1].EnrolledCourses == nil {
		t.Error("missing enrolledCourses should become an empty list")
	}
	if f.SiteStats.TotalRevenue != 1234.5 {
		t.Errorf("TotalRevenue = %v", f.SiteStats.TotalRevenue)
	}
	if c := f.Courses[0].Course(); c.Price != 19.99 {
		t.Errorf("Price = %v", c.Price)
	}
}

func TestSource_LoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/db.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleFixture))
	}))
	defer srv.Close()

	f, err := NewSource(srv.URL+"/api/db.json", time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Users[0].Username != "alice" {
		t.Errorf("Username = %q", f.Users[0].Username)
	}

	if _, err := NewSource(srv.URL+"/missing.json", time.Second).Load(context.Background()); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestSource_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		create  bool
	}{
		{name: "missing file", create: false},
		{name: "malformed json", content: `{"users": [`, create: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "db.json")
			if tt.create {
				if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := NewSource(path, time.Second).Load(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	f, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if f.Users == nil || f.Courses == nil {
		t.Fatal("collections should be non-nil")
	}
}
