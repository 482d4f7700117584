package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/go-resty/resty/v2"
)

// Loader produces the seed document for the record cache
type Loader interface {
	Load(ctx context.Context) (*models.Fixture, error)
}

// Source loads a fixture from a local path or an http(s) URL
type Source struct {
	location string
	client   *resty.Client
}

func NewSource(location string, timeout time.Duration) *Source {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Source{location: location, client: client}
}

func (s *Source) Location() string {
	return s.location
}

func (s *Source) Load(ctx context.Context) (*models.Fixture, error) {
	var (
		data []byte
		err  error
	)

	if isRemote(s.location) {
		data, err = s.fetch(ctx)
	} else {
		data, err = os.ReadFile(s.location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", s.location, err)
	}

	return Decode(data)
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.location)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}
	return resp.Body(), nil
}

// Decode parses a fixture document and normalises missing collections
func Decode(data []byte) (*models.Fixture, error) {
	var f models.Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid fixture document: %w", err)
	}

	if f.Users == nil {
		f.Users = []models.FixtureUser{}
	}
	if f.Courses == nil {
		f.Courses = []models.FixtureCourse{}
	}
	for i := range f.Users {
		if f.Users[i].EnrolledCourses == nil {
			f.Users[i].EnrolledCourses = []string{}
		}
	}

	return &f, nil
}

// Static serves an already decoded fixture
type Static struct {
	Fixture *models.Fixture
	Err     error
}

func (s Static) Load(context.Context) (*models.Fixture, error) {
	return s.Fixture, s.Err
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
