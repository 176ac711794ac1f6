package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/dm-webhook/internal/logger"
	"github.com/vladimiradmaev/dm-webhook/internal/repository"
	"github.com/vladimiradmaev/dm-webhook/internal/session"
)

// Record and field names for user profile data.
const (
	basicInfoRecord     = "Basic Info"
	fieldName           = "Name"
	fieldAge            = "Age"
	fieldDMDiagnosisAge = "DM Diagnosis Age"
	fieldDMType         = "DM Type"
	fieldDMTreatment    = "DM Treatment"
)

// ProfileService handles the welcome conversation and the five onboarding
// answers, all stored in the user's "Basic Info" record.
type ProfileService struct {
	store        repository.RecordStore
	sessions     session.Manager
	storeTimeout time.Duration
}

func NewProfileService(store repository.RecordStore, sessions session.Manager, storeTimeout time.Duration) *ProfileService {
	return &ProfileService{
		store:        store,
		sessions:     sessions,
		storeTimeout: storeTimeout,
	}
}

// Welcome greets a known user by name or starts onboarding for a new one.
// Whether the user is known is decided by the existence of the Basic Info
// record, not by session state, so it survives restarts.
func (s *ProfileService) Welcome(ctx context.Context, req *Request) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	fields, err := s.store.Get(ctx, req.UserID, basicInfoRecord)
	if err != nil {
		return nil, err
	}

	if fields == nil {
		s.sessions.SetStep(req.UserID, session.StepAwaitingName)
		return []string{replyAskName}, nil
	}

	name, _ := fields[fieldName].(string)
	return []string{greetKnownUser(name)}, nil
}

// SetName stores the user's name and introduces the bot. First step of the
// onboarding sequence.
func (s *ProfileService) SetName(ctx context.Context, req *Request) ([]string, error) {
	name := req.Params.String("given-name")
	if err := s.saveField(ctx, req, session.StepAwaitingName, fieldName, name, session.StepAwaitingAge); err != nil {
		return nil, err
	}
	return greetNewUserReplies(name), nil
}

// SetAge stores the user's age and asks for the diagnosis age.
func (s *ProfileService) SetAge(ctx context.Context, req *Request) ([]string, error) {
	if err := s.saveField(ctx, req, session.StepAwaitingAge, fieldAge, req.Params.Raw("age"), session.StepAwaitingDiagnosisAge); err != nil {
		return nil, err
	}
	return []string{replyAskDMAge}, nil
}

// SetDiagnosisAge stores when the user was diagnosed and asks for the DM type.
func (s *ProfileService) SetDiagnosisAge(ctx context.Context, req *Request) ([]string, error) {
	if err := s.saveField(ctx, req, session.StepAwaitingDiagnosisAge, fieldDMDiagnosisAge, req.Params.Raw("DMAge"), session.StepAwaitingDMType); err != nil {
		return nil, err
	}
	return []string{replyAskType}, nil
}

// SetDMType stores the diabetes type and asks for the treatment.
func (s *ProfileService) SetDMType(ctx context.Context, req *Request) ([]string, error) {
	if err := s.saveField(ctx, req, session.StepAwaitingDMType, fieldDMType, req.Params.Raw("DMType"), session.StepAwaitingTreatment); err != nil {
		return nil, err
	}
	return []string{replyAskTreat}, nil
}

// SetTreatment stores the treatment and closes the onboarding sequence.
func (s *ProfileService) SetTreatment(ctx context.Context, req *Request) ([]string, error) {
	if err := s.saveField(ctx, req, session.StepAwaitingTreatment, fieldDMTreatment, req.Params.Raw("DMTreatment"), session.StepDone); err != nil {
		return nil, err
	}
	return []string{replyThanks}, nil
}

// saveField merges one onboarding answer into Basic Info and advances the
// session step. Out-of-sequence answers are logged but still written; the
// NLU side owns the conversation flow and replays just overwrite the field.
func (s *ProfileService) saveField(ctx context.Context, req *Request, expectedStep, key string, value interface{}, nextStep string) error {
	if current := s.sessions.Step(req.UserID); current != expectedStep {
		logger.Warn("Onboarding answer out of sequence",
			"user_id", req.UserID,
			"expected_step", expectedStep,
			"current_step", current,
			"field", key,
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Merge(ctx, req.UserID, basicInfoRecord, key, value); err != nil {
		return err
	}
	s.sessions.SetStep(req.UserID, nextStep)
	return nil
}
