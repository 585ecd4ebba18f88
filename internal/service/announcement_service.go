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

type announcementStore interface {
	Snapshot() *repository.Snapshot
	UpdateAnnouncements(fn func([]models.Announcement) []models.Announcement) *repository.Snapshot
}

// AnnouncementService posts and lists announcements.
type AnnouncementService struct {
	store     announcementStore
	engine    *enrollment.Engine
	validator *validator.Validate
	events    eventPublisher
	cache     *CacheService
	logger    *zap.Logger
}

func NewAnnouncementService(store announcementStore, engine *enrollment.Engine, validate *validator.Validate, events eventPublisher, cache *CacheService, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = enrollment.New(enrollment.Config{})
	}
	return &AnnouncementService{store: store, engine: engine, validator: validate, events: events, cache: cache, logger: logger}
}

// List returns announcements newest first.
func (s *AnnouncementService) List(ctx context.Context) []models.Announcement {
	return append([]models.Announcement(nil), s.store.Snapshot().Announcements...)
}

// Create posts an announcement as the current user. A course id, when given,
// must name an existing course.
func (s *AnnouncementService) Create(ctx context.Context, state models.AppState, draft models.AnnouncementDraft) (*models.Announcement, uint64, error) {
	if !policy.CanAnnounce(state.User) {
		return nil, 0, appErrors.Clone(appErrors.ErrForbidden, "only instructors and admins can post announcements")
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Message = strings.TrimSpace(draft.Message)
	if err := s.validator.Struct(draft); err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}
	if draft.CourseID != nil && *draft.CourseID != "" {
		if _, ok := findCourse(s.store.Snapshot().Courses, *draft.CourseID); !ok {
			return nil, 0, appErrors.Clone(appErrors.ErrValidation, "course_id does not reference an existing course")
		}
	}

	var posted models.Announcement
	snap := s.store.UpdateAnnouncements(func(anns []models.Announcement) []models.Announcement {
		next, ann := s.engine.CreateAnnouncement(anns, draft, state.User)
		posted = ann
		return next
	})
	s.cache.InvalidateViews(ctx)

	evt := models.DomainEvent{Type: models.EventAnnouncementPosted, UserID: state.User.ID, Subject: posted.Title}
	if posted.CourseID != nil {
		evt.CourseID = *posted.CourseID
	}
	emitEvent(ctx, s.events, s.logger, evt)
	return &posted, snap.Version, nil
}
