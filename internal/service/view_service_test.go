package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type resetCounter struct{ n int }

func (r *resetCounter) Reset() { r.n++ }

func newViewService(store *repository.Store, cache *CacheService, resetters ...Resetter) *ViewService {
	seed := func() repository.Seed { return repository.DefaultSeed(seedTime) }
	return NewViewService(store, seed, cache, nil, nil, resetters...)
}

func TestViewServiceMyCoursesStudent(t *testing.T) {
	course := func(id string, enrolled ...string) models.Course {
		return models.Course{ID: id, Capacity: 10, EnrolledIDs: enrolled, InstructorID: "u3"}
	}
	snap := &repository.Snapshot{Courses: []models.Course{course("c1", "self"), course("c2")}}
	resp := Project(snap, models.AppState{User: models.User{ID: "self", Role: models.RoleStudent}, View: models.ViewMyCourses})

	require.Len(t, resp.Courses, 1)
	assert.Equal(t, "c1", resp.Courses[0].ID)
	assert.Equal(t, "My Schedule", resp.Title)
}

func TestViewServiceMyCoursesStaff(t *testing.T) {
	store := newSeededStore()
	resp := Project(store.Snapshot(), stateFor(store, "u3", models.ViewMyCourses))
	require.Len(t, resp.Courses, 2)
	assert.Equal(t, "c1", resp.Courses[0].ID)
	assert.Equal(t, "c3", resp.Courses[1].ID)
	assert.Equal(t, "My Teaching", resp.Title)
	assert.True(t, resp.Courses[0].CanManage)
	assert.False(t, resp.Courses[0].CanRegister)
}

func TestViewServiceDashboardSummary(t *testing.T) {
	store := newSeededStore()
	svc := newViewService(store, nil)

	resp, hit, err := svc.Render(context.Background(), stateFor(store, "u1", models.ViewDashboard))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Dashboard", resp.Title)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 3, resp.Summary.TotalCourses)
	assert.Equal(t, 1, resp.Summary.MyCourses)
	assert.Equal(t, "Enrolled Courses", resp.Summary.MyCoursesLabel)
	require.NotNil(t, resp.Summary.LatestAnnouncement)
	assert.Equal(t, "Welcome to Fall Semester", *resp.Summary.LatestAnnouncement)
	assert.False(t, resp.Actions.CreateCourse)
	assert.Len(t, resp.Courses, 3)

	c1, c3 := resp.Courses[0], resp.Courses[2]
	assert.True(t, c1.CanRegister)
	assert.Equal(t, 29, c1.SeatsRemaining)
	assert.True(t, c3.IsEnrolled)
	assert.True(t, c3.CanDrop)
	assert.False(t, c3.CanRegister)
}

func TestViewServiceDashboardSummaryInstructorNoAnnouncements(t *testing.T) {
	store := newSeededStore()
	store.ReplaceAnnouncements(nil)
	resp := Project(store.Snapshot(), stateFor(store, "u4", models.ViewDashboard))
	assert.Equal(t, "Teaching Courses", resp.Summary.MyCoursesLabel)
	assert.Equal(t, 1, resp.Summary.MyCourses)
	assert.Nil(t, resp.Summary.LatestAnnouncement)
	assert.True(t, resp.Actions.CreateCourse)
	assert.False(t, resp.Actions.PostAnnouncement)
}

func TestViewServiceAnnouncementsView(t *testing.T) {
	store := newSeededStore()
	resp := Project(store.Snapshot(), stateFor(store, "u3", models.ViewAnnouncements))
	assert.Equal(t, "Announcements", resp.Title)
	assert.True(t, resp.Actions.PostAnnouncement)
	assert.Len(t, resp.Announcements, 2)
	assert.Nil(t, resp.Courses)
}

func TestViewServiceFullCourseCard(t *testing.T) {
	store := newSeededStore()
	courses := store.Courses()
	courses[1].Capacity = 1
	courses[1].EnrolledIDs = []string{"u2"}
	courses[1].Description = "Short blurb --- Week 1: setup"
	store.ReplaceCourses(courses)

	resp := Project(store.Snapshot(), stateFor(store, "u1", models.ViewCatalog))
	card := resp.Courses[1]
	assert.True(t, card.IsFull)
	assert.False(t, card.CanRegister)
	assert.False(t, card.CanDrop)
	assert.Equal(t, 0, card.SeatsRemaining)
	assert.Equal(t, "Short blurb", card.Summary)
}

func TestViewServiceCachesDashboard(t *testing.T) {
	store := newSeededStore()
	repo := newMemCacheRepo()
	svc := newViewService(store, NewCacheService(repo, NewMetricsService(), 0, nil, true))
	state := stateFor(store, "u1", models.ViewDashboard)

	_, hit, err := svc.Render(context.Background(), state)
	require.NoError(t, err)
	assert.False(t, hit)

	resp, hit, err := svc.Render(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, resp.Summary.TotalCourses)

	store.ReplaceCourses(store.Courses()[:1])
	resp, hit, err = svc.Render(context.Background(), state)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, resp.Summary.TotalCourses)
}

func TestViewServiceRejectsUnknownView(t *testing.T) {
	store := newSeededStore()
	_, _, err := newViewService(store, nil).Render(context.Background(), stateFor(store, "u1", "MANAGE_COURSES"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestViewServiceReset(t *testing.T) {
	store := newSeededStore()
	counter := &resetCounter{}
	svc := newViewService(store, nil, counter)
	ctx := context.Background()

	err := svc.Reset(ctx, stateFor(store, "u1", models.ViewDashboard))
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Zero(t, counter.n)

	store.ReplaceCourses(nil)
	require.NoError(t, svc.Reset(ctx, stateFor(store, "u5", models.ViewDashboard)))
	assert.Equal(t, 1, counter.n)
	assert.Len(t, store.Courses(), 3)
	assert.Equal(t, uint64(2), store.Version())
}
