package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
	"gorm.io/gorm"
)

// RecordStore is the contract handlers persist through.
type RecordStore interface {
	Get(ctx context.Context, userID int64, name string) (map[string]interface{}, error)
	Merge(ctx context.Context, userID int64, name, fieldKey string, fieldValue interface{}) error
	NextEventNumber(ctx context.Context, userID int64, category, dateKey string) (int, error)
}

// RecordRepository persists per-user documents as JSONB field maps.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Get returns the field map of a record, or (nil, nil) when the record does
// not exist yet.
func (r *RecordRepository) Get(ctx context.Context, userID int64, name string) (map[string]interface{}, error) {
	var raw []byte
	err := r.db.WithContext(ctx).
		Raw(`SELECT fields FROM records WHERE user_id = ? AND name = ?`, userID, name).
		Row().Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStoreReadError(err).
			WithContext("user_id", userID).
			WithContext("record", name)
	}

	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, apperrors.NewStoreReadError(err).
			WithContext("user_id", userID).
			WithContext("record", name)
	}
	return fields, nil
}

// Merge writes one field into the record at (userID, name), creating the
// record when it is missing and leaving every other field untouched. The
// JSONB concatenation runs inside a single statement so concurrent merges
// into the same record cannot lose each other's fields.
func (r *RecordRepository) Merge(ctx context.Context, userID int64, name, fieldKey string, fieldValue interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{fieldKey: fieldValue})
	if err != nil {
		return apperrors.NewStoreWriteError(fmt.Errorf("marshal field %q: %w", fieldKey, err))
	}

	err = r.db.WithContext(ctx).Exec(`
		INSERT INTO records (user_id, name, fields, created_at, updated_at)
		VALUES (?, ?, ?::jsonb, NOW(), NOW())
		ON CONFLICT (user_id, name)
		DO UPDATE SET fields = records.fields || EXCLUDED.fields, updated_at = NOW()`,
		userID, name, string(payload)).Error
	if err != nil {
		return apperrors.NewStoreWriteError(err).
			WithContext("user_id", userID).
			WithContext("record", name).
			WithContext("field", fieldKey)
	}
	return nil
}

// NextEventNumber atomically increments and returns the counter scoped to
// (userID, category, dateKey). The first event of a scope is numbered 1. A
// category whose numbering must never reset passes an empty dateKey, which
// pins all its events to one scope.
func (r *RecordRepository) NextEventNumber(ctx context.Context, userID int64, category, dateKey string) (int, error) {
	var value int
	err := r.db.WithContext(ctx).
		Raw(`
		INSERT INTO event_counters (user_id, category, date_key, value)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (user_id, category, date_key)
		DO UPDATE SET value = event_counters.value + 1
		RETURNING value`,
			userID, category, dateKey).
		Row().Scan(&value)
	if err != nil {
		return 0, apperrors.NewStoreWriteError(err).
			WithContext("user_id", userID).
			WithContext("category", category).
			WithContext("date_key", dateKey)
	}
	return value, nil
}
