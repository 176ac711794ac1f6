package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlucoseReplies(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		hasValue bool
		state    string
		want     []string
	}{
		{
			name:     "value in range",
			value:    120,
			hasValue: true,
			want:     []string{replyGlucoseGood},
		},
		{
			name:     "state bien without value",
			state:    "bien",
			want:     []string{replyGlucoseGood},
		},
		{
			name:     "value too high",
			value:    200,
			hasValue: true,
			want:     []string{replyGlucoseBad, replyGlucoseFollowUp},
		},
		{
			name:     "value too low",
			value:    60,
			hasValue: true,
			want:     []string{replyGlucoseBad, replyGlucoseFollowUp},
		},
		{
			name:     "boundary values are out of range",
			value:    80,
			hasValue: true,
			want:     []string{replyGlucoseBad, replyGlucoseFollowUp},
		},
		{
			name: "no value and no state",
			want: []string{replyGlucoseBad, replyGlucoseFollowUp},
		},
		{
			name:     "bad state but good value",
			value:    100,
			hasValue: true,
			state:    "mal",
			want:     []string{replyGlucoseGood},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, glucoseReplies(tt.value, tt.hasValue, tt.state))
		})
	}
}

func TestInsulinReplies(t *testing.T) {
	assert.Equal(t, []string{replyInsulinBasal}, insulinReplies("lenta"))
	assert.Equal(t, []string{replyInsulinBolus}, insulinReplies("rápida"))
	assert.Equal(t, []string{replyInsulinBolus}, insulinReplies(""))
}

func TestExerciseRepliesEchoSport(t *testing.T) {
	replies := exerciseReplies("natación")
	assert.Len(t, replies, 2)
	assert.Contains(t, replies[0], "natación")
	assert.Equal(t, replyExerciseAdvice, replies[1])
}
