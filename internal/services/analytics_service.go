package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SAP-F-2025/learnhub-service/internal/cache"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/jinzhu/now"
	"github.com/xuri/excelize/v2"
)

const (
	registrationTrendDays = 30
	dashboardChartDays    = 7
	topCoursesLimit       = 10

	joinedLayout = "2006-01-02"
	labelLayout  = "Jan 2"
)

type AnalyticsService interface {
	// Categories lists distinct categories of published courses in first-seen order
	Categories(ctx context.Context) ([]string, error)
	StudentsInCourse(ctx context.Context, courseID string) ([]*models.Account, error)
	// EnrolledCourses skips enrollment ids whose course no longer exists
	EnrolledCourses(ctx context.Context, accountID string) ([]*models.Course, error)
	DashboardStats(ctx context.Context, actor *models.Account) (*models.DashboardResponse, error)
	Analytics(ctx context.Context, actor *models.Account) (*models.AnalyticsData, error)
	ExportAnalyticsXLSX(ctx context.Context, actor *models.Account, w io.Writer) error
}

type analyticsService struct {
	repo   repositories.Repository
	stats  *cache.CacheHelper
	clock  func() time.Time
	logger *slog.Logger
}

// NewAnalyticsService builds the service. stats may be nil; clock defaults to time.Now.
func NewAnalyticsService(repo repositories.Repository, stats *cache.CacheHelper, clock func() time.Time, logger *slog.Logger) AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	if stats == nil {
		stats = cache.NewCacheHelper(nil, cache.StatsCacheConfig.Prefix)
	}
	return &analyticsService{
		repo:   repo,
		stats:  stats,
		clock:  clock,
		logger: logger,
	}
}

func (s *analyticsService) Categories(ctx context.Context) ([]string, error) {
	courses, err := s.repo.Course().ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published courses: %w", err)
	}

	categories := []string{}
	for _, c := range courses {
		if !slices.Contains(categories, c.Category) {
			categories = append(categories, c.Category)
		}
	}
	return categories, nil
}

func (s *analyticsService) StudentsInCourse(ctx context.Context, courseID string) ([]*models.Account, error) {
	accounts, err := s.repo.Account().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	students := []*models.Account{}
	for _, a := range accounts {
		if a.IsEnrolled(courseID) {
			students = append(students, a)
		}
	}
	return students, nil
}

func (s *analyticsService) EnrolledCourses(ctx context.Context, accountID string) ([]*models.Course, error) {
	acc, err := s.repo.Account().GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	byID := make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := []*models.Course{}
	for _, id := range acc.EnrolledCourses {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *analyticsService) DashboardStats(ctx context.Context, actor *models.Account) (*models.DashboardResponse, error) {
	if err := requireAdmin(actor, "dashboard", "view"); err != nil {
		return nil, err
	}

	accounts, err := s.repo.Account().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	site, err := s.repo.SiteStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read site stats: %w", err)
	}

	stats := models.DashboardStats{
		TotalUsers:   len(accounts),
		TotalRevenue: site.TotalRevenue,
	}
	for _, c := range courses {
		if c.IsPublished() {
			stats.ActiveCourses++
		}
	}
	for _, a := range accounts {
		stats.TotalEnrollments += len(a.EnrolledCourses)
		switch a.Role {
		case models.RoleFaculty:
			stats.FacultyCount++
		case models.RoleUser:
			stats.StudentCount++
		}
	}

	return &models.DashboardResponse{
		Stats:                 stats,
		RegistrationChartData: s.registrations(accounts, dashboardChartDays),
	}, nil
}

func (s *analyticsService) Analytics(ctx context.Context, actor *models.Account) (*models.AnalyticsData, error) {
	if err := requireAdmin(actor, "analytics", "view"); err != nil {
		return nil, err
	}

	key := s.cacheKey("json")
	var cached models.AnalyticsData
	if err := s.stats.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
		s.logger.Warn("Analytics cache read failed", "error", err)
	}

	data, err := s.buildAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	s.dropStale(ctx, "json")
	if err := s.stats.Set(ctx, key, data, cache.StatsCacheConfig.TTL); err != nil {
		s.logger.Warn("Analytics cache write failed", "error", err)
	}
	return data, nil
}

func (s *analyticsService) buildAnalytics(ctx context.Context) (*models.AnalyticsData, error) {
	accounts, err := s.repo.Account().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &models.AnalyticsData{
		RegistrationTrend:          s.registrations(accounts, registrationTrendDays),
		CourseCategoryDistribution: categoryDistribution(courses),
		TopCoursesByEnrollment:     topCourses(accounts, courses, topCoursesLimit),
		UserRoleDistribution:       roleDistribution(accounts),
	}, nil
}

// registrations counts join dates per day over the trailing window ending today
func (s *analyticsService) registrations(accounts []*models.Account, days int) models.ChartSeries {
	today := now.With(s.clock()).BeginningOfDay()

	series := models.ChartSeries{
		Labels: make([]string, days),
		Data:   make([]int, days),
	}
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-days+1)
		series.Labels[i] = day.Format(labelLayout)
		index[day.Format(joinedLayout)] = i
	}

	for _, a := range accounts {
		if i, ok := index[a.Joined]; ok {
			series.Data[i]++
		}
	}
	return series
}

func categoryDistribution(courses []*models.Course) models.ChartSeries {
	series := models.ChartSeries{Labels: []string{}, Data: []int{}}
	for _, c := range courses {
		i := slices.Index(series.Labels, c.Category)
		if i < 0 {
			series.Labels = append(series.Labels, c.Category)
			series.Data = append(series.Data, 1)
			continue
		}
		series.Data[i]++
	}
	return series
}

// topCourses ranks courses by enrolled-account count. Ties keep first-seen order
// and ids without a course are labelled "Course <id>".
func topCourses(accounts []*models.Account, courses []*models.Course, limit int) models.ChartSeries {
	type entry struct {
		id    string
		count int
	}
	var entries []entry
	for _, a := range accounts {
		for _, id := range a.EnrolledCourses {
			i := slices.IndexFunc(entries, func(e entry) bool { return e.id == id })
			if i < 0 {
				entries = append(entries, entry{id: id, count: 1})
				continue
			}
			entries[i].count++
		}
	}

	slices.SortStableFunc(entries, func(a, b entry) int { return b.count - a.count })
	if len(entries) > limit {
		entries = entries[:limit]
	}

	series := models.ChartSeries{Labels: []string{}, Data: []int{}}
	for _, e := range entries {
		name := "Course " + e.id
		if i := slices.IndexFunc(courses, func(c *models.Course) bool { return c.ID == e.id }); i >= 0 {
			name = courses[i].Title
		}
		series.Labels = append(series.Labels, name)
		series.Data = append(series.Data, e.count)
	}
	return series
}

func roleDistribution(accounts []*models.Account) models.ChartSeries {
	series := models.ChartSeries{
		Labels: make([]string, len(models.Roles)),
		Data:   make([]int, len(models.Roles)),
	}
	for i, role := range models.Roles {
		series.Labels[i] = strings.ToUpper(string(role[:1])) + string(role[1:])
	}
	for _, a := range accounts {
		if i := slices.Index(models.Roles, a.Role); i >= 0 {
			series.Data[i]++
		}
	}
	return series
}

func (s *analyticsService) ExportAnalyticsXLSX(ctx context.Context, actor *models.Account, w io.Writer) error {
	if err := requireAdmin(actor, "analytics", "export"); err != nil {
		return err
	}

	key := s.cacheKey("xlsx")
	if cached, err := s.stats.GetString(ctx, key); err == nil {
		_, err = io.WriteString(w, cached)
		return err
	}

	data, err := s.buildAnalytics(ctx)
	if err != nil {
		return err
	}

	buf, err := renderWorkbook(data)
	if err != nil {
		return err
	}

	if s.stats.Available() {
		s.dropStale(ctx, "xlsx")
		if err := s.stats.SetString(ctx, key, buf.String(), cache.StatsCacheConfig.TTL); err != nil {
			s.logger.Warn("Export cache write failed", "error", err)
		}
	}

	_, err = buf.WriteTo(w)
	return err
}

// ExportSheets lists the workbook sheets in order
var ExportSheets = []string{"Registrations", "Categories", "Top Courses", "Roles"}

func renderWorkbook(data *models.AnalyticsData) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	series := []struct {
		header string
		data   models.ChartSeries
	}{
		{"Day", data.RegistrationTrend},
		{"Category", data.CourseCategoryDistribution},
		{"Course", data.TopCoursesByEnrollment},
		{"Role", data.UserRoleDistribution},
	}

	for i, sheet := range ExportSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		s := series[i]
		if err := f.SetSheetRow(sheet, "A1", &[]any{s.header, "Count"}); err != nil {
			return nil, err
		}
		for row, label := range s.data.Labels {
			cell, err := excelize.CoordinatesToCellName(1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &[]any{label, s.data.Data[row]}); err != nil {
				return nil, err
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

// dropStale removes entries of kind cached under an older revision or day
func (s *analyticsService) dropStale(ctx context.Context, kind string) {
	if err := s.stats.InvalidatePattern(ctx, "analytics:"+kind+":*"); err != nil {
		s.logger.Warn("Failed to drop stale analytics", "kind", kind, "error", err)
	}
}

// cacheKey ties cached analytics to the record revision and the current day
func (s *analyticsService) cacheKey(kind string) string {
	return fmt.Sprintf("analytics:%s:%d:%s", kind, s.repo.Revision(), s.clock().Format(joinedLayout))
}
