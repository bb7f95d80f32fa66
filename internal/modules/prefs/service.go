package prefs

import (
	"context"
	"errors"

	"crmboard/internal/domain"
)

var ErrUnknownKey = errors.New("unknown preference key")

// Defaults returned when a user never saved the preference.
var defaults = map[string]string{
	domain.PrefBoardViewMode:       "kanban",
	domain.PrefStatsPanelCollapsed: "false",
}

type PreferenceRepositoryInterface interface {
	Get(ctx context.Context, userID int64, key string) (*domain.UserPreference, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.UserPreference, error)
	Set(ctx context.Context, userID int64, key, value string) error
}

// Service persists small per-user UI state server-side so it survives
// reloads and devices. Only known keys are accepted.
type Service struct {
	prefs PreferenceRepositoryInterface
}

func NewService(prefs PreferenceRepositoryInterface) *Service {
	return &Service{prefs: prefs}
}

// GetAll returns every known preference, falling back to defaults for
// keys the user never set.
func (s *Service) GetAll(ctx context.Context, userID int64) (map[string]string, error) {
	stored, err := s.prefs.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(defaults))
	for key, def := range defaults {
		out[key] = def
	}
	for _, p := range stored {
		if _, known := defaults[p.Key]; known {
			out[p.Key] = p.Value
		}
	}
	return out, nil
}

func (s *Service) Set(ctx context.Context, userID int64, key, value string) error {
	if _, known := defaults[key]; !known {
		return ErrUnknownKey
	}
	return s.prefs.Set(ctx, userID, key, value)
}
