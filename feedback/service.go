package feedback

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dailyyoga/coinboard/logger"
)

// Service stores feedback and emits events for it.
type Service struct {
	db      *gorm.DB
	emitter Emitter
	log     logger.Logger
}

// NewService creates a feedback service. A nil emitter disables publishing.
func NewService(log logger.Logger, db *gorm.DB, emitter Emitter) (*Service, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{db: db, emitter: emitter, log: log}, nil
}

// Submit validates and stores one piece of feedback. Publishing the event is
// best-effort: a broker failure is logged, the stored row is authoritative.
func (s *Service) Submit(ctx context.Context, userID, rating, comment string) (*Feedback, error) {
	if rating != RatingUp && rating != RatingDown {
		return nil, ErrInvalidRating(rating)
	}

	fb := &Feedback{UserID: userID, Rating: rating, Comment: comment}
	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, ErrQuery(err)
	}

	err := s.emitter.Emit(ctx, Event{
		FeedbackID: fb.ID,
		UserID:     fb.UserID,
		Rating:     fb.Rating,
		Comment:    fb.Comment,
		CreatedAt:  fb.CreatedAt,
	})
	if err != nil {
		s.log.Warn("failed to emit feedback event",
			zap.Uint("feedback_id", fb.ID),
			zap.Error(err),
		)
	}
	return fb, nil
}
