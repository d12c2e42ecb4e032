package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/dailyyoga/coinboard/logger"
)

// Resolver looks up a user's preferences for dashboard requests.
// Lookup failures never propagate; the defaults are used instead.
type Resolver struct {
	service *Service
	log     logger.Logger
}

// NewResolver creates a preference resolver.
func NewResolver(service *Service, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{service: service, log: log}
}

// Resolve returns the user's preferences, or the defaults when the
// account is missing or the stored payload cannot be decoded.
func (r *Resolver) Resolve(ctx context.Context, userID string) Preferences {
	prefs, err := r.service.Preferences(ctx, userID)
	if err != nil {
		r.log.Warn("falling back to default preferences",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return DefaultPreferences()
	}
	return prefs
}
