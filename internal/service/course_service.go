package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/enrollment"
	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type courseStore interface {
	Snapshot() *repository.Snapshot
	UpdateCourses(fn func([]models.Course) []models.Course) *repository.Snapshot
}

// CourseResult is the outcome of an enrollment mutation. Course is nil when
// the target course does not exist.
type CourseResult struct {
	Course  *models.Course
	Outcome enrollment.Outcome
	Version uint64
}

// Changed reports whether the store was modified.
func (r CourseResult) Changed() bool {
	return r.Outcome.Changed()
}

// CourseService applies catalog and enrollment mutations for the current user.
type CourseService struct {
	store     courseStore
	engine    *enrollment.Engine
	validator *validator.Validate
	events    eventPublisher
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewCourseService(store courseStore, engine *enrollment.Engine, validate *validator.Validate, events eventPublisher, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = enrollment.New(enrollment.Config{})
	}
	return &CourseService{store: store, engine: engine, validator: validate, events: events, cache: cache, metrics: metrics, logger: logger}
}

// List returns the catalog in store order.
func (s *CourseService) List(ctx context.Context) []models.Course {
	return cloneCourseList(s.store.Snapshot().Courses)
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, ok := findCourse(s.store.Snapshot().Courses, id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &course, nil
}

// Register takes a seat for the current user. Full, duplicate and missing
// course requests leave the store unchanged and are not errors.
func (s *CourseService) Register(ctx context.Context, state models.AppState, courseID string) (CourseResult, error) {
	if !policy.CanEnroll(state.User) {
		return CourseResult{}, appErrors.Clone(appErrors.ErrForbidden, "only students can register for courses")
	}
	return s.applyEnrollment(ctx, "register", models.EventCourseRegistered, state.User.ID, courseID, s.engine.Register), nil
}

// Unregister drops the current user's seat if they hold one.
func (s *CourseService) Unregister(ctx context.Context, state models.AppState, courseID string) (CourseResult, error) {
	if !policy.CanEnroll(state.User) {
		return CourseResult{}, appErrors.Clone(appErrors.ErrForbidden, "only students can drop courses")
	}
	return s.applyEnrollment(ctx, "unregister", models.EventCourseUnregistered, state.User.ID, courseID, s.engine.Unregister), nil
}

type enrollmentOp func(courses []models.Course, userID, courseID string) ([]models.Course, enrollment.Outcome)

func (s *CourseService) applyEnrollment(ctx context.Context, op string, eventType models.DomainEventType, userID, courseID string, apply enrollmentOp) CourseResult {
	var outcome enrollment.Outcome
	snap := s.store.UpdateCourses(func(courses []models.Course) []models.Course {
		next, o := apply(courses, userID, courseID)
		outcome = o
		return next
	})
	s.metrics.RecordEnrollment(op, string(outcome))

	result := CourseResult{Outcome: outcome, Version: snap.Version}
	if course, ok := findCourse(snap.Courses, courseID); ok {
		result.Course = &course
	}
	if !outcome.Changed() {
		s.logger.Debug("enrollment no-op", zap.String("op", op), zap.String("course_id", courseID), zap.String("outcome", string(outcome)))
		return result
	}

	s.cache.InvalidateViews(ctx)
	emitEvent(ctx, s.events, s.logger, models.DomainEvent{Type: eventType, CourseID: courseID, UserID: userID, Subject: result.Course.Code})
	return result
}

// Create adds a course taught by the current user.
func (s *CourseService) Create(ctx context.Context, state models.AppState, draft models.CourseDraft) (*models.Course, uint64, error) {
	if !policy.CanManageCourses(state.User) {
		return nil, 0, appErrors.Clone(appErrors.ErrForbidden, "only instructors and admins can create courses")
	}
	draft.Code = strings.TrimSpace(draft.Code)
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Category = models.CourseCategory(strings.ToUpper(string(draft.Category)))
	if err := s.validator.Struct(draft); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	var created models.Course
	snap := s.store.UpdateCourses(func(courses []models.Course) []models.Course {
		next, course := s.engine.CreateCourse(courses, draft, state.User)
		created = course
		return next
	})
	s.metrics.RecordEnrollment("create", string(enrollment.OutcomeApplied))
	s.cache.InvalidateViews(ctx)
	emitEvent(ctx, s.events, s.logger, models.DomainEvent{Type: models.EventCourseCreated, CourseID: created.ID, UserID: state.User.ID, Subject: created.Code})

	s.logger.Info("course created", zap.String("course_id", created.ID), zap.String("code", created.Code), zap.String("instructor_id", created.InstructorID))
	return &created, snap.Version, nil
}

// Delete removes a course the current user manages. Deletion must be
// confirmed; an unknown id is an idempotent no-op.
func (s *CourseService) Delete(ctx context.Context, state models.AppState, courseID string, confirmed bool) (CourseResult, error) {
	snap := s.store.Snapshot()
	course, ok := findCourse(snap.Courses, courseID)
	if !ok {
		s.metrics.RecordEnrollment("delete", string(enrollment.OutcomeCourseMissing))
		return CourseResult{Outcome: enrollment.OutcomeCourseMissing, Version: snap.Version}, nil
	}
	if !policy.CanManageCourse(state.User, course) {
		return CourseResult{}, appErrors.Clone(appErrors.ErrForbidden, "you cannot manage this course")
	}
	if !confirmed {
		return CourseResult{}, appErrors.Clone(appErrors.ErrConfirmationRequired, "deleting a course requires confirm=true")
	}

	var outcome enrollment.Outcome
	snap = s.store.UpdateCourses(func(courses []models.Course) []models.Course {
		next, o := s.engine.DeleteCourse(courses, courseID)
		outcome = o
		return next
	})
	s.metrics.RecordEnrollment("delete", string(outcome))

	result := CourseResult{Course: &course, Outcome: outcome, Version: snap.Version}
	if outcome.Changed() {
		s.cache.InvalidateViews(ctx)
		emitEvent(ctx, s.events, s.logger, models.DomainEvent{Type: models.EventCourseDeleted, CourseID: courseID, UserID: state.User.ID, Subject: course.Code})
		s.logger.Info("course deleted", zap.String("course_id", courseID), zap.String("by", state.User.ID))
	}
	return result, nil
}

func findCourse(courses []models.Course, id string) (models.Course, bool) {
	for _, c := range courses {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Course{}, false
}

func cloneCourseList(courses []models.Course) []models.Course {
	out := make([]models.Course, len(courses))
	for i, c := range courses {
		out[i] = c.Clone()
	}
	return out
}
