package services

import (
	"context"
	"fmt"

	apperrors "github.com/vladimiradmaev/dm-webhook/internal/errors"
)

// fakeStore is an in-memory RecordStore with the same merge and counter
// semantics as the Postgres repository.
type fakeStore struct {
	records  map[string]map[string]interface{}
	counters map[string]int
	readErr  error
	writeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:  make(map[string]map[string]interface{}),
		counters: make(map[string]int),
	}
}

func recordKey(userID int64, name string) string {
	return fmt.Sprintf("%d|%s", userID, name)
}

func (f *fakeStore) Get(ctx context.Context, userID int64, name string) (map[string]interface{}, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	rec, ok := f.records[recordKey(userID, name)]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeStore) Merge(ctx context.Context, userID int64, name, fieldKey string, fieldValue interface{}) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	key := recordKey(userID, name)
	if f.records[key] == nil {
		f.records[key] = make(map[string]interface{})
	}
	f.records[key][fieldKey] = fieldValue
	return nil
}

func (f *fakeStore) NextEventNumber(ctx context.Context, userID int64, category, dateKey string) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	key := fmt.Sprintf("%d|%s|%s", userID, category, dateKey)
	f.counters[key]++
	return f.counters[key], nil
}

// fakeGenerator is a canned TextGenerator.
type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func upstreamDown() error {
	return apperrors.NewUpstreamError(fmt.Errorf("dial tcp: connection refused"), "endpoint")
}
