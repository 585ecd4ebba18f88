package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/jobs"
)

// SyllabusJobKind tags queue jobs that generate a syllabus draft.
const SyllabusJobKind = "syllabus_draft"

// SyllabusDraftStore keeps the drafts of the current session.
type SyllabusDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.SyllabusDraft
}

func NewSyllabusDraftStore() *SyllabusDraftStore {
	return &SyllabusDraftStore{drafts: make(map[string]models.SyllabusDraft)}
}

func (s *SyllabusDraftStore) Get(id string) (models.SyllabusDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	return d, ok
}

// CreatePending stores a new PENDING draft unless another draft is still pending.
func (s *SyllabusDraftStore) CreatePending(draft models.SyllabusDraft) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drafts {
		if d.Status == models.SyllabusDraftPending {
			return false
		}
	}
	draft.Status = models.SyllabusDraftPending
	s.drafts[draft.ID] = draft
	return true
}

// Complete marks a draft READY with text. Drafts removed by a reset are ignored.
func (s *SyllabusDraftStore) Complete(id, text string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return false
	}
	d.Status = models.SyllabusDraftReady
	d.Text = text
	d.FinishedAt = &at
	s.drafts[id] = d
	return true
}

func (s *SyllabusDraftStore) Delete(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// Reset drops every draft.
func (s *SyllabusDraftStore) Reset() {
	s.mu.Lock()
	s.drafts = make(map[string]models.SyllabusDraft)
	s.mu.Unlock()
}

type syllabusDispatcher interface {
	Submit(job jobs.Job) (jobs.Job, error)
}

// SyllabusService accepts draft requests and hands them to the job queue.
type SyllabusService struct {
	drafts *SyllabusDraftStore
	queue  syllabusDispatcher
	now    func() time.Time
	logger *zap.Logger
}

func NewSyllabusService(drafts *SyllabusDraftStore, queue syllabusDispatcher, logger *zap.Logger) *SyllabusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusService{drafts: drafts, queue: queue, now: time.Now, logger: logger}
}

// Request creates a PENDING draft and queues its generation. A second request
// while one is pending is a conflict.
func (s *SyllabusService) Request(ctx context.Context, state models.AppState, title string, category models.CourseCategory) (*models.SyllabusDraft, error) {
	if !policy.CanManageCourses(state.User) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only instructors and admins can draft syllabi")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if category == "" {
		category = models.CategoryCS
	}
	category = models.CourseCategory(strings.ToUpper(string(category)))
	if !category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category "+string(category))
	}

	draft := models.SyllabusDraft{
		ID:          uuid.NewString(),
		Title:       title,
		Category:    category,
		Status:      models.SyllabusDraftPending,
		RequestedBy: state.User.ID,
		CreatedAt:   s.now().UTC(),
	}
	if !s.drafts.CreatePending(draft) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a syllabus draft is already being generated")
	}
	if _, err := s.queue.Submit(jobs.Job{ID: draft.ID, Kind: SyllabusJobKind, Payload: draft.ID}); err != nil {
		s.drafts.Delete(draft.ID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue syllabus draft")
	}
	s.logger.Info("syllabus draft queued", zap.String("draft_id", draft.ID), zap.String("title", title))
	return &draft, nil
}

// Get returns a draft by id.
func (s *SyllabusService) Get(ctx context.Context, id string) (*models.SyllabusDraft, error) {
	d, ok := s.drafts.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus draft not found")
	}
	return &d, nil
}

type syllabusAdvisor interface {
	RequestSyllabus(ctx context.Context, title string, category models.CourseCategory) string
}

// SyllabusWorker bridges queue jobs to the advisory gateway.
type SyllabusWorker struct {
	drafts  *SyllabusDraftStore
	advisor syllabusAdvisor
	now     func() time.Time
	logger  *zap.Logger
}

func NewSyllabusWorker(drafts *SyllabusDraftStore, advisor syllabusAdvisor, logger *zap.Logger) *SyllabusWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyllabusWorker{drafts: drafts, advisor: advisor, now: time.Now, logger: logger}
}

// Handle generates the draft text. The gateway always yields text, so the
// draft always ends READY.
func (w *SyllabusWorker) Handle(ctx context.Context, job jobs.Job) error {
	id, _ := job.Payload.(string)
	if id == "" {
		id = job.ID
	}
	draft, ok := w.drafts.Get(id)
	if !ok {
		w.logger.Debug("syllabus draft gone before generation", zap.String("draft_id", id))
		return nil
	}
	text := w.advisor.RequestSyllabus(ctx, draft.Title, draft.Category)
	if !w.drafts.Complete(id, text, w.now().UTC()) {
		w.logger.Debug("syllabus draft removed during generation", zap.String("draft_id", id))
	}
	return nil
}
