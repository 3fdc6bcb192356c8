package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecord struct {
	ID         string
	UserID     string
	TargetID   string
	TargetType TargetType
	Flag       bool
}

// fakeStore keeps at most one record per (user, target) key and can be
// primed to fail a create with ErrDuplicate, as a lost insert race would.
type fakeStore struct {
	records     map[string]*fakeRecord
	duplicateOn bool
	findErr     error
	createCalls int
	deleteCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*fakeRecord)}
}

func key(userID, targetID string, targetType TargetType) string {
	return userID + "|" + targetID + "|" + string(targetType)
}

func (s *fakeStore) FindByOwner(ctx context.Context, userID, targetID string, targetType TargetType) (*fakeRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	r, ok := s.records[key(userID, targetID, targetType)]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return r, nil
}

func (s *fakeStore) Create(ctx context.Context, record *fakeRecord) error {
	s.createCalls++
	k := key(record.UserID, record.TargetID, record.TargetType)
	if s.duplicateOn {
		return ErrDuplicate
	}
	if _, ok := s.records[k]; ok {
		return ErrDuplicate
	}
	s.records[k] = record
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, record *fakeRecord) error {
	s.deleteCalls++
	delete(s.records, key(record.UserID, record.TargetID, record.TargetType))
	return nil
}

func TestToggleCreatesWhenAbsent(t *testing.T) {
	store := newFakeStore()
	fresh := &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost}

	result, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, fresh)

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, fresh, result.Record)
	assert.Len(t, store.records, 1)
}

func TestToggleDeletesWhenPresent(t *testing.T) {
	store := newFakeStore()
	existing := &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost}
	store.records[key("u1", "t1", TargetPost)] = existing

	result, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Nil(t, result.Record)
	assert.Empty(t, store.records)
}

func TestToggleWithDifferentFlagStillRemoves(t *testing.T) {
	store := newFakeStore()
	store.records[key("u1", "t1", TargetPost)] = &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost, Flag: false}

	// The repeat carries the opposite flag; the record is removed anyway,
	// never updated in place.
	result, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost, Flag: true})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Empty(t, store.records)
	assert.Zero(t, store.createCalls)
}

func TestToggleIsScopedToTheTargetPair(t *testing.T) {
	store := newFakeStore()
	store.records[key("u1", "t1", TargetPost)] = &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost}

	// Same id under a different target type is a distinct record.
	result, err := Toggle(context.Background(), store, "u1", "t1", TargetComment, &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetComment})

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Len(t, store.records, 2)
}

func TestToggleRecoversLostCreateRace(t *testing.T) {
	store := newFakeStore()
	winner := &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost}

	// The concurrent winner's row lands between our find and our create.
	store.duplicateOn = true
	store.records[key("u1", "t1", TargetPost)] = winner

	result, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Empty(t, store.records, "the surviving row is removed to complete the toggle-off")
}

func TestToggleRaceWinnerAlreadyGone(t *testing.T) {
	store := newFakeStore()
	// Create reports a duplicate but the row is gone by the re-fetch: the
	// concurrent caller ran a full create and delete cycle.
	store.duplicateOn = true

	result, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, &fakeRecord{UserID: "u1", TargetID: "t1", TargetType: TargetPost})

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Zero(t, store.deleteCalls)
}

func TestTogglePropagatesStorageErrors(t *testing.T) {
	store := newFakeStore()
	store.findErr = errors.New("connection reset")

	_, err := Toggle(context.Background(), store, "u1", "t1", TargetPost, &fakeRecord{})

	assert.Error(t, err)
}
