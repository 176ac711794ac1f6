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

func newProfileService(store *fakeStore) (*ProfileService, session.Manager) {
	sessions := session.NewMemoryManager()
	return NewProfileService(store, sessions, 5*time.Second), sessions
}

func profileRequest(intent Intent, params Params) *Request {
	return &Request{
		Intent: intent,
		UserID: testUser,
		Date:   testDate,
		Params: params,
	}
}

func TestWelcomeNewUserAsksForName(t *testing.T) {
	store := newFakeStore()
	svc, sessions := newProfileService(store)

	replies, err := svc.Welcome(context.Background(), profileRequest(IntentWelcome, Params{}))
	require.NoError(t, err)
	assert.Equal(t, []string{replyAskName}, replies)
	assert.Equal(t, session.StepAwaitingName, sessions.Step(testUser))
}

func TestWelcomeKnownUserGreetsByName(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Merge(context.Background(), testUser, basicInfoRecord, fieldName, "Ana"))
	svc, _ := newProfileService(store)

	replies, err := svc.Welcome(context.Background(), profileRequest(IntentWelcome, Params{}))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Ana")
}

func TestWelcomeReadFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.readErr = apperrors.NewStoreReadError(assert.AnError)
	svc, _ := newProfileService(store)

	_, err := svc.Welcome(context.Background(), profileRequest(IntentWelcome, Params{}))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_READ_FAILED", appErr.Code)
}

func TestOnboardingSequenceStoresEachField(t *testing.T) {
	store := newFakeStore()
	svc, sessions := newProfileService(store)
	ctx := context.Background()

	_, err := svc.Welcome(ctx, profileRequest(IntentWelcome, Params{}))
	require.NoError(t, err)

	replies, err := svc.SetName(ctx, profileRequest(IntentUserName, Params{"given-name": "Ana"}))
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Contains(t, replies[0], "Ana")
	assert.Equal(t, replyAskAge, replies[1])

	_, err = svc.SetAge(ctx, profileRequest(IntentUserAge, Params{"age": float64(30)}))
	require.NoError(t, err)
	_, err = svc.SetDiagnosisAge(ctx, profileRequest(IntentUserDMDiagAge, Params{"DMAge": float64(12)}))
	require.NoError(t, err)
	_, err = svc.SetDMType(ctx, profileRequest(IntentUserDMType, Params{"DMType": "tipo 1"}))
	require.NoError(t, err)
	replies, err = svc.SetTreatment(ctx, profileRequest(IntentUserDMTreatment, Params{"DMTreatment": "insulina"}))
	require.NoError(t, err)
	assert.Equal(t, []string{replyThanks}, replies)

	rec := store.records[recordKey(testUser, basicInfoRecord)]
	assert.Equal(t, "Ana", rec[fieldName])
	assert.Equal(t, float64(30), rec[fieldAge])
	assert.Equal(t, float64(12), rec[fieldDMDiagnosisAge])
	assert.Equal(t, "tipo 1", rec[fieldDMType])
	assert.Equal(t, "insulina", rec[fieldDMTreatment])
	assert.Equal(t, session.StepDone, sessions.Step(testUser))
}

func TestOutOfSequenceAnswerStillWrites(t *testing.T) {
	store := newFakeStore()
	svc, _ := newProfileService(store)

	// DM type arrives without any prior onboarding step.
	_, err := svc.SetDMType(context.Background(), profileRequest(IntentUserDMType, Params{"DMType": "tipo 2"}))
	require.NoError(t, err)

	rec := store.records[recordKey(testUser, basicInfoRecord)]
	assert.Equal(t, "tipo 2", rec[fieldDMType])
}

func TestOnboardingWriteFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.writeErr = apperrors.NewStoreWriteError(assert.AnError)
	svc, sessions := newProfileService(store)

	_, err := svc.SetName(context.Background(), profileRequest(IntentUserName, Params{"given-name": "Ana"}))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_WRITE_FAILED", appErr.Code)
	// The step does not advance on failure.
	assert.Equal(t, session.StepNone, sessions.Step(testUser))
}
