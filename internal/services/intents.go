package services

import (
	"context"

	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"github.com/vladimiradmaev/dm-webhook/internal/logger"
)

// Intent names as the NLU platform reports them.
type Intent string

const (
	IntentWelcome          Intent = "Welcome Intent"
	IntentUserAge          Intent = "User Age"
	IntentUserName         Intent = "User Name"
	IntentUserDMDiagAge    Intent = "User DM Diagnosis Age"
	IntentUserDMType       Intent = "User DM Type"
	IntentUserDMTreatment  Intent = "User DM Treatment"
	IntentGlucoseLevel     Intent = "Glucose Level"
	IntentInsulin          Intent = "Insulin"
	IntentFoodIngestion    Intent = "Food Ingestion"
	IntentPhysicalExercise Intent = "Physical Exercise"
	IntentSportsMatch      Intent = "Sports Match"
	IntentStress           Intent = "Stress"
)

// Request is the normalized inbound event every handler receives.
type Request struct {
	Intent Intent
	UserID int64
	Date   int64 // Unix send-time of the original message
	Text   string
	Params Params
}

// HandlerFunc processes one intent and returns the ordered reply list.
type HandlerFunc func(ctx context.Context, req *Request) ([]string, error)

// Dispatcher routes a request to the handler registered for its intent.
// Unknown intents fail with UNKNOWN_INTENT instead of silently producing
// nothing.
type Dispatcher struct {
	handlers map[Intent]HandlerFunc
}

// NewDispatcher wires every recognized intent. The handler table is built in
// one place so a missing intent is obvious.
func NewDispatcher(profiles *ProfileService, events *EventService) *Dispatcher {
	return &Dispatcher{
		handlers: map[Intent]HandlerFunc{
			IntentWelcome:          profiles.Welcome,
			IntentUserName:         profiles.SetName,
			IntentUserAge:          profiles.SetAge,
			IntentUserDMDiagAge:    profiles.SetDiagnosisAge,
			IntentUserDMType:       profiles.SetDMType,
			IntentUserDMTreatment:  profiles.SetTreatment,
			IntentGlucoseLevel:     events.Glucose,
			IntentInsulin:          events.Insulin,
			IntentFoodIngestion:    events.Food,
			IntentPhysicalExercise: events.Exercise,
			IntentSportsMatch:      events.Match,
			IntentStress:           events.Stress,
		},
	}
}

// Dispatch invokes the handler for the request's intent.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) ([]string, error) {
	handler, ok := d.handlers[req.Intent]
	if !ok {
		return nil, apperrors.NewUnknownIntentError(string(req.Intent))
	}

	logger.Debug("Dispatching intent",
		"intent", string(req.Intent),
		"user_id", req.UserID,
	)
	return handler(ctx, req)
}
