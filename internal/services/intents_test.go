package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"github.com/vladimiradmaev/dm-webhook/internal/session"
)

func newDispatcher(store *fakeStore) *Dispatcher {
	profiles := NewProfileService(store, session.NewMemoryManager(), 5*time.Second)
	events := NewEventService(store, nil, 5*time.Second)
	return NewDispatcher(profiles, events)
}

func TestDispatchUnknownIntent(t *testing.T) {
	d := newDispatcher(newFakeStore())

	_, err := d.Dispatch(context.Background(), &Request{
		Intent: Intent("Order Pizza"),
		UserID: testUser,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UNKNOWN_INTENT", appErr.Code)
}

func TestDispatchCoversAllRecognizedIntents(t *testing.T) {
	intents := []Intent{
		IntentWelcome,
		IntentUserAge,
		IntentUserName,
		IntentUserDMDiagAge,
		IntentUserDMType,
		IntentUserDMTreatment,
		IntentGlucoseLevel,
		IntentInsulin,
		IntentFoodIngestion,
		IntentPhysicalExercise,
		IntentSportsMatch,
		IntentStress,
	}

	d := newDispatcher(newFakeStore())
	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			replies, err := d.Dispatch(context.Background(), &Request{
				Intent: intent,
				UserID: testUser,
				Date:   testDate,
				Params: Params{},
			})
			require.NoError(t, err)
			assert.NotEmpty(t, replies)
		})
	}
}
