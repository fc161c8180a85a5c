package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"interviewprep/backend/internal/dto"
	"interviewprep/backend/internal/models"
	"interviewprep/backend/internal/repositories"
)

// InterviewDetectedChannel carries interview detections published by
// the mail and calendar scanners.
const InterviewDetectedChannel = "interview.detected"

// InterviewDetectedEvent is the payload published by the scanners. The
// scanners only know the mailbox address, so the user is referenced by
// email rather than id.
type InterviewDetectedEvent struct {
	Email    string         `json:"email"`
	Company  string         `json:"company"`
	Role     string         `json:"role"`
	Type     string         `json:"type"`
	Source   string         `json:"source"`
	StartsAt string         `json:"starts_at"`
	Details  map[string]any `json:"details"`
}

type InterviewSubscriber struct {
	rdb           *redis.Client
	userRepo      *repositories.UserRepository
	interviewRepo *repositories.InterviewRepository
	logger        *zap.Logger
	instanceID    string
}

func NewInterviewSubscriber(redisAddr string, userRepo *repositories.UserRepository, interviewRepo *repositories.InterviewRepository, logger *zap.Logger) *InterviewSubscriber {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	return &InterviewSubscriber{
		rdb:           rdb,
		userRepo:      userRepo,
		interviewRepo: interviewRepo,
		logger:        logger,
		instanceID:    uuid.New().String()[:8],
	}
}

// Subscribe consumes interview detections until ctx is cancelled.
func (s *InterviewSubscriber) Subscribe(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	subscriber := s.rdb.Subscribe(ctx, InterviewDetectedChannel)
	defer subscriber.Close()
	ch := subscriber.Channel()

	s.logger.Info("interview subscriber started",
		zap.String("channel", InterviewDetectedChannel),
		zap.String("instance", s.instanceID))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handleEvent(msg.Payload)
		}
	}
}

func (s *InterviewSubscriber) handleEvent(payload string) {
	var event InterviewDetectedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		s.logger.Warn("dropping malformed interview event", zap.Error(err))
		return
	}

	user, err := s.userRepo.GetUserByEmail(event.Email)
	if err != nil {
		s.logger.Warn("dropping interview event for unknown user",
			zap.String("email", event.Email), zap.Error(err))
		return
	}

	interview := &models.Interview{UserID: user.ID}
	if event.Company != "" {
		company := event.Company
		interview.Company = &company
	}
	if event.Role != "" {
		role := event.Role
		interview.Role = &role
	}
	if isKnownType(event.Type) {
		t := event.Type
		interview.Type = &t
	}
	if isKnownSource(event.Source) {
		src := event.Source
		interview.Source = &src
	}
	if event.StartsAt != "" {
		startsAt, err := dto.ParseTime(event.StartsAt)
		if err != nil {
			s.logger.Warn("ignoring unparseable starts_at",
				zap.String("starts_at", event.StartsAt), zap.Error(err))
		} else {
			interview.StartsAt = &startsAt
		}
	}
	if event.Details != nil {
		interview.Details = datatypes.JSONMap(event.Details)
	}

	// scanners redeliver, so identical detections are dropped
	duplicate, err := s.interviewRepo.HasSimilar(user.ID, interview.Company, interview.StartsAt)
	if err != nil {
		s.logger.Error("duplicate check failed", zap.Error(err))
		return
	}
	if duplicate {
		s.logger.Debug("skipping duplicate detection",
			zap.Uint("user_id", user.ID), zap.String("email", event.Email))
		return
	}

	if err := s.interviewRepo.CreateInterview(interview); err != nil {
		s.logger.Error("failed to save detected interview",
			zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}

	s.logger.Info("saved detected interview",
		zap.String("instance", s.instanceID),
		zap.Uint("user_id", user.ID),
		zap.Uint("interview_id", interview.ID),
		zap.String("source", event.Source))
}

func isKnownType(t string) bool {
	switch t {
	case models.TypePhone, models.TypeBehavioural, models.TypeCoding, models.TypeDesign:
		return true
	}
	return false
}

func isKnownSource(s string) bool {
	return s == models.SourceGmail || s == models.SourceGcal
}
