package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/courseconnect-api/internal/enrollment"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type courseFixture struct {
	svc   *CourseService
	store *repository.Store
	pub   *recordingPublisher
	cache *memCacheRepo
}

func newCourseFixture() courseFixture {
	store := newSeededStore()
	pub := &recordingPublisher{}
	repo := newMemCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, true)
	engine := enrollment.New(enrollment.Config{NewID: sequence("new-")})
	return courseFixture{
		svc:   NewCourseService(store, engine, nil, pub, cache, NewMetricsService(), nil),
		store: store,
		pub:   pub,
		cache: repo,
	}
}

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func TestCourseServiceRegisterAndDrop(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	alice := stateFor(f.store, "u1", models.ViewCatalog)

	res, err := f.svc.Register(ctx, alice, "c2")
	require.NoError(t, err)
	assert.True(t, res.Changed())
	require.NotNil(t, res.Course)
	assert.Equal(t, []string{"u1"}, res.Course.EnrolledIDs)
	assert.Equal(t, uint64(1), res.Version)

	res, err = f.svc.Register(ctx, alice, "c2")
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, enrollment.OutcomeDuplicate, res.Outcome)
	assert.Equal(t, uint64(1), res.Version)

	res, err = f.svc.Unregister(ctx, alice, "c2")
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.Empty(t, res.Course.EnrolledIDs)

	assert.Equal(t, []models.DomainEventType{models.EventCourseRegistered, models.EventCourseUnregistered}, f.pub.types())
	assert.NotEmpty(t, f.cache.invalidated)
}

func TestCourseServiceRegisterMissingCourseIsSilent(t *testing.T) {
	f := newCourseFixture()
	res, err := f.svc.Register(context.Background(), stateFor(f.store, "u1", models.ViewCatalog), "nope")
	require.NoError(t, err)
	assert.Nil(t, res.Course)
	assert.Equal(t, enrollment.OutcomeCourseMissing, res.Outcome)
	assert.Empty(t, f.pub.types())
}

func TestCourseServiceRegisterFullCourse(t *testing.T) {
	f := newCourseFixture()
	courses := f.store.Courses()
	courses[1].Capacity = 1
	courses[1].EnrolledIDs = []string{"u2"}
	f.store.ReplaceCourses(courses)

	res, err := f.svc.Register(context.Background(), stateFor(f.store, "u1", models.ViewCatalog), "c2")
	require.NoError(t, err)
	assert.Equal(t, enrollment.OutcomeFull, res.Outcome)
	assert.Equal(t, []string{"u2"}, res.Course.EnrolledIDs)
}

func TestCourseServiceStaffCannotEnroll(t *testing.T) {
	f := newCourseFixture()
	for _, id := range []string{"u3", "u5"} {
		_, err := f.svc.Register(context.Background(), stateFor(f.store, id, models.ViewCatalog), "c2")
		assert.ErrorIs(t, err, appErrors.ErrForbidden)
		_, err = f.svc.Unregister(context.Background(), stateFor(f.store, id, models.ViewCatalog), "c1")
		assert.ErrorIs(t, err, appErrors.ErrForbidden)
	}
}

func TestCourseServiceCreate(t *testing.T) {
	f := newCourseFixture()
	smith := stateFor(f.store, "u3", models.ViewCatalog)

	course, version, err := f.svc.Create(context.Background(), smith, models.CourseDraft{
		Code:     " ART100 ",
		Title:    "Drawing",
		Category: "art",
		Schedule: "Sat 10:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", course.ID)
	assert.Equal(t, "ART100", course.Code)
	assert.Equal(t, models.CategoryArt, course.Category)
	assert.Equal(t, "u3", course.InstructorID)
	assert.Equal(t, "Dr. Smith", course.InstructorName)
	assert.Equal(t, enrollment.DefaultCapacity, course.Capacity)
	assert.Empty(t, course.EnrolledIDs)
	assert.Contains(t, course.Image, "https://picsum.photos/400/200?random=")
	assert.Equal(t, uint64(1), version)
	assert.Len(t, f.store.Courses(), 4)
	assert.Equal(t, []models.DomainEventType{models.EventCourseCreated}, f.pub.types())
}

func TestCourseServiceCreateValidation(t *testing.T) {
	f := newCourseFixture()
	smith := stateFor(f.store, "u3", models.ViewCatalog)

	_, _, err := f.svc.Create(context.Background(), smith, models.CourseDraft{Code: "X1", Title: "  ", Category: models.CategoryCS})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, _, err = f.svc.Create(context.Background(), smith, models.CourseDraft{Code: "X1", Title: "T", Category: "HIST"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, _, err = f.svc.Create(context.Background(), stateFor(f.store, "u1", models.ViewCatalog), models.CourseDraft{Code: "X1", Title: "T", Category: models.CategoryCS})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Len(t, f.store.Courses(), 3)
}

func TestCourseServiceDelete(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	johnson := stateFor(f.store, "u4", models.ViewCatalog)
	smith := stateFor(f.store, "u3", models.ViewCatalog)

	_, err := f.svc.Delete(ctx, johnson, "c1", true)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Delete(ctx, smith, "c1", false)
	assert.ErrorIs(t, err, appErrors.ErrConfirmationRequired)
	assert.Len(t, f.store.Courses(), 3)

	res, err := f.svc.Delete(ctx, smith, "c1", true)
	require.NoError(t, err)
	assert.True(t, res.Changed())
	ids := []string{}
	for _, c := range f.store.Courses() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c2", "c3"}, ids)

	res, err = f.svc.Delete(ctx, smith, "c1", true)
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, []models.DomainEventType{models.EventCourseDeleted}, f.pub.types())
}

func TestCourseServiceAdminDeletesAnyCourse(t *testing.T) {
	f := newCourseFixture()
	res, err := f.svc.Delete(context.Background(), stateFor(f.store, "u5", models.ViewCatalog), "c2", true)
	require.NoError(t, err)
	assert.True(t, res.Changed())
}

func TestCourseServiceGet(t *testing.T) {
	f := newCourseFixture()
	course, err := f.svc.Get(context.Background(), "c3")
	require.NoError(t, err)
	assert.Equal(t, "MATH101", course.Code)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	list := f.svc.List(context.Background())
	list[0].EnrolledIDs[0] = "mutated"
	assert.Equal(t, []string{"u2"}, f.store.Courses()[0].EnrolledIDs)
}

func TestCourseServicePublishFailureKeepsMutation(t *testing.T) {
	f := newCourseFixture()
	f.pub.err = fmt.Errorf("bus closed")
	res, err := f.svc.Register(context.Background(), stateFor(f.store, "u1", models.ViewCatalog), "c2")
	require.NoError(t, err)
	assert.True(t, res.Changed())
	assert.True(t, f.store.Courses()[1].IsEnrolled("u1"))
}
