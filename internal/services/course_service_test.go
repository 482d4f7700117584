package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/learnhub-service/internal/events"
	"github.com/SAP-F-2025/learnhub-service/internal/models"
	"github.com/SAP-F-2025/learnhub-service/internal/repositories"
	"github.com/SAP-F-2025/learnhub-service/internal/validator"
)

func newCourseService(env *testEnv) CourseService {
	return NewCourseService(env.repo, env.analytics(), env.validator, env.publisher, env.logger)
}

func TestCourseService_Authorization(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	ctx := context.Background()

	title := "Renamed"
	type args struct {
		actorID  string
		courseID string
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{name: "owner updates own course", args: args{actorID: "f1", courseID: "c1"}},
		{name: "admin updates any course", args: args{actorID: "a1", courseID: "c4"}},
		{name: "admin updates unowned course", args: args{actorID: "a1", courseID: "c3"}},
		{name: "other faculty is forbidden", args: args{actorID: "f2", courseID: "c1"}, wantErr: ErrForbidden},
		{name: "student is forbidden", args: args{actorID: "u1", courseID: "c1"}, wantErr: ErrForbidden},
		{name: "faculty cannot touch unowned course", args: args{actorID: "f1", courseID: "c3"}, wantErr: ErrForbidden},
		{name: "missing course", args: args{actorID: "a1", courseID: "nope"}, wantErr: repositories.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, env.account(t, tt.args.actorID), tt.args.courseID, &models.UpdateCourseRequest{Title: &title})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.Update(ctx, nil, "c1", &models.UpdateCourseRequest{Title: &title}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous update: %v", err)
	}
}

func TestCourseService_CreatePrice(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	ctx := context.Background()
	prof := env.account(t, "f1")

	tests := []struct {
		name  string
		price any
		want  float64
	}{
		{name: "number", price: 12.5, want: 12.5},
		{name: "numeric string", price: "40", want: 40},
		{name: "garbage stores zero", price: "free", want: 0},
		{name: "missing stores zero", price: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Create(ctx, prof, &models.CreateCourseRequest{Title: "Course " + tt.name, Category: "Programming", Price: tt.price})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if c.Price != tt.want {
				t.Errorf("Price = %v, want %v", c.Price, tt.want)
			}
			if c.InstructorID != prof.ID || c.InstructorName != prof.Username || c.Status != models.CourseDraft {
				t.Errorf("unexpected course: %+v", c)
			}
		})
	}

	if _, err := svc.Create(ctx, env.account(t, "u1"), &models.CreateCourseRequest{Title: "X", Category: "Y"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("student create: %v", err)
	}
	if _, err := svc.Create(ctx, prof, &models.CreateCourseRequest{Title: "   ", Category: "Y"}); err == nil {
		t.Error("blank title should be rejected")
	} else if _, ok := validator.AsValidationErrors(err); !ok {
		t.Errorf("blank title error = %T", err)
	}
}

func TestCourseService_UpdateKeepsPriceOnInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	ctx := context.Background()
	prof := env.account(t, "f1")

	c, err := svc.Update(ctx, prof, "c1", &models.UpdateCourseRequest{Price: "n/a"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Price != 20 {
		t.Errorf("Price = %v, want 20", c.Price)
	}
}

func TestCourseService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	ctx := context.Background()

	if err := svc.Delete(ctx, env.account(t, "f1"), "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "c1"); !repositories.IsNotFoundError(err) {
		t.Fatalf("course still readable: %v", err)
	}
	for _, id := range []string{"u1", "u2"} {
		if env.account(t, id).IsEnrolled("c1") {
			t.Errorf("%s still enrolled in deleted course", id)
		}
	}
	if got := env.publisher.Types(); got[len(got)-1] != events.CourseDeleted {
		t.Errorf("events = %v", got)
	}
}

func TestCourseService_Listing(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	ctx := context.Background()

	published, err := svc.ListPublished(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 3 {
		t.Errorf("published = %d, want 3", len(published))
	}

	if _, err := svc.ListAll(ctx, env.account(t, "f1")); !errors.Is(err, ErrForbidden) {
		t.Errorf("faculty ListAll: %v", err)
	}
	all, err := svc.ListAll(ctx, env.account(t, "a1"))
	if err != nil || len(all) != 4 {
		t.Fatalf("admin ListAll = %d, %v", len(all), err)
	}

	own, err := svc.ListByInstructor(ctx, env.account(t, "f1"), "f1")
	if err != nil || len(own) != 2 {
		t.Fatalf("own courses = %d, %v", len(own), err)
	}
	if _, err := svc.ListByInstructor(ctx, env.account(t, "f1"), "f2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("listing another instructor: %v", err)
	}

	students, err := svc.Students(ctx, env.account(t, "f1"), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 2 || students[0].ID != "u1" || students[1].ID != "u2" {
		t.Errorf("students = %+v", students)
	}
}

func TestEnrollmentService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewEnrollmentService(env.repo, env.analytics(), env.publisher, env.logger)
	ctx := context.Background()
	alice := env.account(t, "u1")

	acc, err := svc.Enroll(ctx, alice, "c4")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if len(acc.EnrolledCourses) != 3 {
		t.Fatalf("enrolled = %v", acc.EnrolledCourses)
	}

	_, err = svc.Enroll(ctx, alice, "c4")
	if !repositories.IsConflictError(err) || err.Error() != "Already enrolled" {
		t.Fatalf("second Enroll: %v", err)
	}
	if n := len(env.account(t, "u1").EnrolledCourses); n != 3 {
		t.Fatalf("set grew to %d on duplicate enroll", n)
	}

	if _, err := svc.Enroll(ctx, alice, "missing"); err == nil || err.Error() != "User or Course not found" {
		t.Fatalf("enroll missing course: %v", err)
	}

	courses, err := svc.EnrolledCourses(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 3 || courses[0].ID != "c1" || courses[2].ID != "c4" {
		t.Errorf("courses = %+v", courses)
	}

	if _, err := svc.Unenroll(ctx, alice, "c4"); err != nil {
		t.Fatalf("Unenroll: %v", err)
	}
	if _, err := svc.Unenroll(ctx, alice, "c4"); !repositories.IsNotFoundError(err) || err.Error() != "Not enrolled in this course" {
		t.Fatalf("second Unenroll: %v", err)
	}

	if _, err := svc.Enroll(ctx, nil, "c1"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous enroll: %v", err)
	}

	want := []string{events.EnrollmentCreated, events.EnrollmentRemoved}
	got := env.publisher.Types()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}
