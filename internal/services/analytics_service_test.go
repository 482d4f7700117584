package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

func TestAnalyticsService_Categories(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.analytics().Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// drafts are excluded, duplicates collapse in first-seen order
	if want := []string{"Programming", "Business"}; !slices.Equal(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

func TestAnalyticsService_DashboardStats(t *testing.T) {
	env := newTestEnv(t)
	svc := env.analytics()
	ctx := context.Background()

	if _, err := svc.DashboardStats(ctx, env.account(t, "f1")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("faculty dashboard: %v", err)
	}

	got, err := svc.DashboardStats(ctx, env.account(t, "a1"))
	if err != nil {
		t.Fatal(err)
	}
	want := models.DashboardStats{
		TotalUsers:       5,
		ActiveCourses:    3,
		TotalEnrollments: 4,
		TotalRevenue:     4321,
		FacultyCount:     2,
		StudentCount:     2,
	}
	if got.Stats != want {
		t.Errorf("Stats = %+v, want %+v", got.Stats, want)
	}

	chart := got.RegistrationChartData
	if len(chart.Labels) != 7 || chart.Labels[0] != "Mar 9" || chart.Labels[6] != "Mar 15" {
		t.Errorf("labels = %v", chart.Labels)
	}
	if want := []int{0, 0, 0, 0, 0, 1, 1}; !slices.Equal(chart.Data, want) {
		t.Errorf("data = %v, want %v", chart.Data, want)
	}
}

func TestAnalyticsService_Analytics(t *testing.T) {
	env := newTestEnv(t)
	data, err := env.analytics().Analytics(context.Background(), env.account(t, "a1"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		series     models.ChartSeries
		wantLabels []string
		wantData   []int
	}{
		{
			name:       "category distribution",
			series:     data.CourseCategoryDistribution,
			wantLabels: []string{"Programming", "Design", "Business"},
			wantData:   []int{2, 1, 1},
		},
		{
			name:       "top courses",
			series:     data.TopCoursesByEnrollment,
			wantLabels: []string{"Go Basics", "Design 101", "Accounting"},
			wantData:   []int{2, 1, 1},
		},
		{
			name:       "roles",
			series:     data.UserRoleDistribution,
			wantLabels: []string{"Admin", "Faculty", "User"},
			wantData:   []int{1, 2, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.series.Labels, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", tt.series.Labels, tt.wantLabels)
			}
			if !slices.Equal(tt.series.Data, tt.wantData) {
				t.Errorf("data = %v, want %v", tt.series.Data, tt.wantData)
			}
		})
	}

	t.Run("registration trend", func(t *testing.T) {
		trend := data.RegistrationTrend
		if len(trend.Labels) != 30 || len(trend.Data) != 30 {
			t.Fatalf("trend has %d labels, %d points", len(trend.Labels), len(trend.Data))
		}
		if trend.Labels[0] != "Feb 15" || trend.Labels[29] != "Mar 15" {
			t.Errorf("window = %s..%s", trend.Labels[0], trend.Labels[29])
		}
		want := map[int]int{5: 1, 15: 1, 28: 1, 29: 1}
		for i, n := range trend.Data {
			if n != want[i] {
				t.Errorf("day %d (%s) = %d, want %d", i, trend.Labels[i], n, want[i])
			}
		}
	})
}

func TestTopCourses_LimitAndMissingTitles(t *testing.T) {
	courses := []*models.Course{{ID: "c1", Title: "Go"}}
	var accounts []*models.Account
	for i := 0; i < 12; i++ {
		accounts = append(accounts, &models.Account{EnrolledCourses: []string{fmt.Sprintf("x%d", i)}})
	}
	accounts = append(accounts,
		&models.Account{EnrolledCourses: []string{"c1", "x3"}},
		&models.Account{EnrolledCourses: []string{"x3"}},
	)

	got := topCourses(accounts, courses, 10)
	if len(got.Labels) != 10 {
		t.Fatalf("len = %d, want 10", len(got.Labels))
	}
	if got.Labels[0] != "Course x3" || got.Data[0] != 3 {
		t.Errorf("first = %s/%d", got.Labels[0], got.Data[0])
	}
	// ties keep first-encounter order
	if got.Labels[1] != "Course x0" || got.Labels[2] != "Course x1" {
		t.Errorf("tie order = %v", got.Labels[:3])
	}
	if slices.Contains(got.Labels, "Go") {
		t.Error("c1 was encountered last among ties and should be cut by the limit")
	}
}

func TestAnalyticsService_ExportXLSX(t *testing.T) {
	env := newTestEnv(t)
	svc := env.analytics()
	ctx := context.Background()

	var buf bytes.Buffer
	if err := svc.ExportAnalyticsXLSX(ctx, env.account(t, "u1"), &buf); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student export: %v", err)
	}

	if err := svc.ExportAnalyticsXLSX(ctx, env.account(t, "a1"), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !slices.Equal(got, ExportSheets) {
		t.Fatalf("sheets = %v", got)
	}
	rows, err := f.GetRows("Roles")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[0][0] != "Role" || rows[1][0] != "Admin" || rows[2][1] != "2" {
		t.Errorf("Roles rows = %v", rows)
	}
}

func TestAnalyticsService_CachesByRevision(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := newTestEnv(t)
	stats := cache.NewCacheHelper(client, cache.StatsCacheConfig.Prefix)
	svc := NewAnalyticsService(env.repo, stats, testClock, env.logger)
	ctx := context.Background()
	admin := env.account(t, "a1")

	if _, err := svc.Analytics(ctx, admin); err != nil {
		t.Fatal(err)
	}
	first := fmt.Sprintf("stats:analytics:json:%d:2024-03-15", env.repo.Revision())
	if !mr.Exists(first) {
		t.Fatalf("expected %s in redis, have %v", first, mr.Keys())
	}
	if ttl := mr.TTL(first); ttl <= 0 {
		t.Errorf("stats entry has no ttl")
	}

	if _, err := env.repo.Enrollment().Enroll(ctx, "u1", "c4"); err != nil {
		t.Fatal(err)
	}
	data, err := svc.Analytics(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if data.TopCoursesByEnrollment.Data[1] != 2 {
		t.Errorf("stale analytics after enrollment: %+v", data.TopCoursesByEnrollment)
	}
	if mr.Exists(first) {
		t.Errorf("superseded entry %s was not dropped", first)
	}

	var buf bytes.Buffer
	if err := svc.ExportAnalyticsXLSX(ctx, admin, &buf); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(fmt.Sprintf("stats:analytics:xlsx:%d:2024-03-15", env.repo.Revision())) {
		t.Error("export was not cached")
	}
	var again bytes.Buffer
	if err := svc.ExportAnalyticsXLSX(ctx, admin, &again); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("cached export differs")
	}
}
