package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/courseconnect-api/internal/models"
	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type userDirectory interface {
	Users() []models.User
}

// SessionService holds the single application session: who the client is
// acting as and which view it shows. Identity switches need no authentication.
type SessionService struct {
	users         userDirectory
	defaultUserID string
	logger        *zap.Logger

	mu     sync.RWMutex
	userID string
	view   models.ViewState
}

// NewSessionService starts the session as defaultUserID on the dashboard. An
// unknown default falls back to the first listed user.
func NewSessionService(users userDirectory, defaultUserID string, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, ok := models.FindUser(users.Users(), defaultUserID); !ok {
		all := users.Users()
		if len(all) > 0 {
			logger.Warn("default user not found, using first user", zap.String("user_id", defaultUserID), zap.String("fallback", all[0].ID))
			defaultUserID = all[0].ID
		}
	}
	return &SessionService{
		users:         users,
		defaultUserID: defaultUserID,
		logger:        logger,
		userID:        defaultUserID,
		view:          models.ViewDashboard,
	}
}

// Users lists the selectable identities.
func (s *SessionService) Users(ctx context.Context) []models.User {
	return s.users.Users()
}

// Current returns the explicit state every query and mutation runs against.
func (s *SessionService) Current(ctx context.Context) (models.AppState, error) {
	s.mu.RLock()
	userID, view := s.userID, s.view
	s.mu.RUnlock()

	user, ok := models.FindUser(s.users.Users(), userID)
	if !ok {
		return models.AppState{}, appErrors.Clone(appErrors.ErrUnknownUser, "current user no longer exists")
	}
	return models.AppState{User: user, View: view}, nil
}

// SwitchUser makes userID the current identity. The view is kept.
func (s *SessionService) SwitchUser(ctx context.Context, userID string) (models.AppState, error) {
	user, ok := models.FindUser(s.users.Users(), userID)
	if !ok {
		return models.AppState{}, appErrors.Clone(appErrors.ErrUnknownUser, "unknown user "+userID)
	}
	s.mu.Lock()
	s.userID = user.ID
	view := s.view
	s.mu.Unlock()

	s.logger.Info("session user switched", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return models.AppState{User: user, View: view}, nil
}

// Navigate selects view. Every view is reachable by every user.
func (s *SessionService) Navigate(ctx context.Context, view models.ViewState) (models.AppState, error) {
	if !view.Valid() {
		return models.AppState{}, appErrors.Clone(appErrors.ErrValidation, "unknown view "+string(view))
	}
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return s.Current(ctx)
}

// Reset returns the session to its initial user and view.
func (s *SessionService) Reset() {
	s.mu.Lock()
	s.userID = s.defaultUserID
	s.view = models.ViewDashboard
	s.mu.Unlock()
}
