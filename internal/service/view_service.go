package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/dto"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type snapshotStore interface {
	Snapshot() *repository.Snapshot
	Reset(seed repository.Seed) *repository.Snapshot
}

// Resetter is session scoped state that a session reset clears.
type Resetter interface {
	Reset()
}

// ViewService projects the store onto the current view.
type ViewService struct {
	store     snapshotStore
	seed      func() repository.Seed
	cache     *CacheService
	events    eventPublisher
	resetters []Resetter
	logger    *zap.Logger
}

func NewViewService(store snapshotStore, seed func() repository.Seed, cache *CacheService, events eventPublisher, logger *zap.Logger, resetters ...Resetter) *ViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{store: store, seed: seed, cache: cache, events: events, resetters: resetters, logger: logger}
}

// Render builds the projection for state. Dashboard projections are cached per
// user and store version; the bool reports a cache hit.
func (s *ViewService) Render(ctx context.Context, state models.AppState) (*dto.ViewResponse, bool, error) {
	if !state.View.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "unknown view "+string(state.View))
	}
	snap := s.store.Snapshot()

	if state.View != models.ViewDashboard {
		return Project(snap, state), false, nil
	}

	key := ViewKey(string(state.View), state.User.ID, snap.Version)
	var cached dto.ViewResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}
	resp := Project(snap, state)
	s.cache.Set(ctx, key, resp, 0)
	return resp, false, nil
}

// Reset reinstalls the seed data and clears session scoped state. Admin only.
func (s *ViewService) Reset(ctx context.Context, state models.AppState) error {
	if !policy.CanViewActivity(state.User) {
		return appErrors.Clone(appErrors.ErrForbidden, "only admins can reset the session")
	}
	snap := s.store.Reset(s.seed())
	for _, r := range s.resetters {
		r.Reset()
	}
	s.cache.InvalidateViews(ctx)
	emitEvent(ctx, s.events, s.logger, models.DomainEvent{Type: models.EventSessionReset, UserID: state.User.ID})
	s.logger.Info("session reset", zap.String("by", state.User.ID), zap.Uint64("version", snap.Version))
	return nil
}

// Project is the pure view function over a snapshot.
func Project(snap *repository.Snapshot, state models.AppState) *dto.ViewResponse {
	user := state.User
	resp := &dto.ViewResponse{
		View:  state.View,
		Title: viewTitle(state.View, user),
		Actions: dto.ViewActions{
			CreateCourse:     policy.CanManageCourses(user),
			PostAnnouncement: policy.CanAnnounce(user) && state.View == models.ViewAnnouncements,
		},
		Version: snap.Version,
	}

	switch state.View {
	case models.ViewDashboard:
		mine := MyCourses(snap.Courses, user)
		summary := &dto.DashboardSummary{
			TotalCourses:   len(snap.Courses),
			MyCourses:      len(mine),
			MyCoursesLabel: "Teaching Courses",
		}
		if user.Role == models.RoleStudent {
			summary.MyCoursesLabel = "Enrolled Courses"
		}
		if len(snap.Announcements) > 0 {
			latest := snap.Announcements[0].Title
			summary.LatestAnnouncement = &latest
		}
		resp.Summary = summary
		resp.Courses = cards(snap.Courses, user)
	case models.ViewCatalog:
		resp.Courses = cards(snap.Courses, user)
	case models.ViewMyCourses:
		resp.Courses = cards(MyCourses(snap.Courses, user), user)
	case models.ViewAnnouncements:
		resp.Announcements = append([]models.Announcement{}, snap.Announcements...)
	}
	return resp
}

// MyCourses filters to the courses a student is enrolled in, or the courses staff teach.
func MyCourses(courses []models.Course, user models.User) []models.Course {
	out := make([]models.Course, 0, len(courses))
	for _, c := range courses {
		var mine bool
		if user.Role == models.RoleStudent {
			mine = c.IsEnrolled(user.ID)
		} else {
			mine = c.InstructorID == user.ID
		}
		if mine {
			out = append(out, c)
		}
	}
	return out
}

func viewTitle(view models.ViewState, user models.User) string {
	switch view {
	case models.ViewCatalog:
		return "Course Catalog"
	case models.ViewMyCourses:
		if user.Role == models.RoleStudent {
			return "My Schedule"
		}
		return "My Teaching"
	case models.ViewAnnouncements:
		return "Announcements"
	default:
		return "Dashboard"
	}
}

func cards(courses []models.Course, user models.User) []dto.CourseCard {
	out := make([]dto.CourseCard, 0, len(courses))
	enroll := policy.CanEnroll(user)
	for _, c := range courses {
		enrolled := c.IsEnrolled(user.ID)
		full := c.IsFull()
		out = append(out, dto.CourseCard{
			Course:         c.Clone(),
			Summary:        c.Summary(),
			SeatsRemaining: c.SeatsRemaining(),
			EnrolledCount:  len(c.EnrolledIDs),
			IsEnrolled:     enrolled,
			IsFull:         full,
			CanRegister:    enroll && !enrolled && !full,
			CanDrop:        enroll && enrolled,
			CanManage:      policy.CanManageCourse(user, c),
		})
	}
	return out
}
