package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	"github.com/noah-isme/courseconnect-api/internal/policy"
	"github.com/noah-isme/courseconnect-api/internal/repository"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
	"github.com/noah-isme/courseconnect-api/pkg/export"
)

// RosterHeaders are the columns of every roster export.
var RosterHeaders = []string{"#", "Student ID", "Name", "Email"}

type rosterSource interface {
	Snapshot() *repository.Snapshot
}

// RosterFile is a rendered roster ready for download.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// RosterService exports the enrolled students of a course.
type RosterService struct {
	store  rosterSource
	logger *zap.Logger
}

func NewRosterService(store rosterSource, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{store: store, logger: logger}
}

// Export renders the roster of courseID in format (csv, pdf or xlsx).
func (s *RosterService) Export(ctx context.Context, state models.AppState, courseID, format string) (*RosterFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	snap := s.store.Snapshot()
	course, ok := findCourse(snap.Courses, courseID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if !policy.CanManageCourse(state.User, course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "you cannot export this roster")
	}

	exporter, err := export.For(f)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	body, err := exporter.Render(RosterDataset(course, snap.Users))
	if err != nil {
		s.logger.Error("roster render failed", zap.String("course_id", courseID), zap.String("format", string(f)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render roster")
	}
	return &RosterFile{
		Filename:    fmt.Sprintf("%s-roster.%s", strings.ToLower(course.Code), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}

// RosterDataset lists enrolled users in enrollment order. Ids with no matching
// user keep empty name and email.
func RosterDataset(course models.Course, users []models.User) export.Dataset {
	rows := make([]map[string]string, 0, len(course.EnrolledIDs))
	for i, id := range course.EnrolledIDs {
		u, _ := models.FindUser(users, id)
		rows = append(rows, map[string]string{
			"#":          strconv.Itoa(i + 1),
			"Student ID": id,
			"Name":       u.Name,
			"Email":      u.Email,
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("%s %s Roster", course.Code, course.Title),
		Headers: RosterHeaders,
		Rows:    rows,
	}
}
