package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"github.com/vladimiradmaev/dm-webhook/internal/logger"
	"github.com/vladimiradmaev/dm-webhook/internal/repository"
	"github.com/vladimiradmaev/dm-webhook/internal/utils"
)

// Counter categories. Every category resets its numbering when the date key
// changes except stress, which is scoped without a date and therefore only
// grows for the lifetime of the user.
const (
	categoryGlucose  = "glucose"
	categoryInsulin  = "insulin"
	categoryFood     = "food"
	categoryExercise = "exercise"
	categoryMatch    = "match"
	categoryStress   = "stress"
)

// EventService records daily diabetes events into per-date records. Each
// event is one composite field ("<Category> Event <N>") whose value bundles
// all sub-attributes, so a single merge covers the whole event.
type EventService struct {
	store        repository.RecordStore
	generator    TextGenerator
	storeTimeout time.Duration
}

func NewEventService(store repository.RecordStore, generator TextGenerator, storeTimeout time.Duration) *EventService {
	return &EventService{
		store:        store,
		generator:    generator,
		storeTimeout: storeTimeout,
	}
}

// saveEvent numbers the event within its counter scope and merges it into
// the record named by the message's date key. resetDaily scopes the counter
// to the date key; without it the counter is per user and category only and
// never resets.
func (s *EventService) saveEvent(ctx context.Context, req *Request, category string, resetDaily bool, eventLabel string, data map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	dateKey := utils.UnixToDate(req.Date)
	counterKey := ""
	if resetDaily {
		counterKey = dateKey
	}

	num, err := s.store.NextEventNumber(ctx, req.UserID, category, counterKey)
	if err != nil {
		return err
	}

	fieldKey := fmt.Sprintf("%s %d", eventLabel, num)
	return s.store.Merge(ctx, req.UserID, dateKey, fieldKey, data)
}

// Glucose records a glucose measurement. The state and value slots are
// optional and only stored when present.
func (s *EventService) Glucose(ctx context.Context, req *Request) ([]string, error) {
	state := req.Params.String("glucose_state")
	value, hasValue := req.Params.Float("glucose_value")

	data := map[string]interface{}{
		"Glucose Event Time": req.Params.Raw("date-time"),
	}
	if state != "" {
		data["Glucose State"] = state
	}
	if hasValue {
		data["Glucose Value"] = value
	}

	if err := s.saveEvent(ctx, req, categoryGlucose, true, "Glucose Event", data); err != nil {
		return nil, err
	}
	return glucoseReplies(value, hasValue, state), nil
}

// Insulin records an insulin injection. All slots are required by the NLU
// side; absent ones are stored as-is without validation.
func (s *EventService) Insulin(ctx context.Context, req *Request) ([]string, error) {
	insulinType := req.Params.String("insulin_type")
	data := map[string]interface{}{
		"Insulin Injection Event Time": req.Params.Raw("date-time"),
		"Insulin Type":                 insulinType,
		"Insulin Dose":                 req.Params.Raw("insulin_units"),
	}

	if err := s.saveEvent(ctx, req, categoryInsulin, true, "Insulin Injection Event", data); err != nil {
		return nil, err
	}
	return insulinReplies(insulinType), nil
}

// Food records a meal. The food lists, amount and weight are optional.
func (s *EventService) Food(ctx context.Context, req *Request) ([]string, error) {
	data := map[string]interface{}{
		"Food Ingestion Event Time": req.Params.Raw("date-time"),
	}
	if hch := req.Params.StringList("hch_food"); len(hch) > 0 {
		data["High Carbohidrate Food Eaten"] = hch
	}
	if lch := req.Params.StringList("lch_food"); len(lch) > 0 {
		data["Low Carbohidrate Food Eaten"] = lch
	}
	if amount, ok := req.Params.Float("number"); ok {
		data["Amount"] = amount
	}
	if weight := req.Params.String("unit-weight"); weight != "" {
		data["Weight"] = weight
	}

	if err := s.saveEvent(ctx, req, categoryFood, true, "Food Ingestion Event", data); err != nil {
		return nil, err
	}
	return foodReplies(), nil
}

// Exercise records a physical exercise session.
func (s *EventService) Exercise(ctx context.Context, req *Request) ([]string, error) {
	sport := req.Params.String("sport")
	data := map[string]interface{}{
		"Sport Type":          sport,
		"Duration":            req.Params.Raw("duration"),
		"Exercise Event Time": req.Params.Raw("date-time"),
	}

	if err := s.saveEvent(ctx, req, categoryExercise, true, "Physical Exercise Event", data); err != nil {
		return nil, err
	}
	return exerciseReplies(sport), nil
}

// Match records a sports match.
func (s *EventService) Match(ctx context.Context, req *Request) ([]string, error) {
	data := map[string]interface{}{
		"Sport Type": req.Params.String("sport"),
		"Match Time": req.Params.Raw("date-time"),
	}

	if err := s.saveEvent(ctx, req, categoryMatch, true, "Sports Match Event", data); err != nil {
		return nil, err
	}
	return matchReplies(), nil
}

// Stress records a stress event and asks the text generator for an empathic
// reply based on the user's own words. The stress counter never resets, so
// it is scoped without a date key. When the upstream is unavailable the
// canned reply is used instead; the event itself is already stored.
func (s *EventService) Stress(ctx context.Context, req *Request) ([]string, error) {
	data := map[string]interface{}{
		"Stress Event Time": req.Params.Raw("date-time"),
	}

	if err := s.saveEvent(ctx, req, categoryStress, false, "Stress Event", data); err != nil {
		return nil, err
	}

	if s.generator != nil && req.Text != "" {
		reply, err := s.generator.Generate(ctx, req.Text)
		if err == nil && reply != "" {
			return []string{reply}, nil
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Warn("Falling back to canned stress reply", appErr.LogFields()...)
		} else if err != nil {
			logger.Warn("Falling back to canned stress reply", "error", err.Error())
		}
	}
	return stressReplies(), nil
}
