package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/internal/repo/repotest"
)

type event struct {
	Topic, Key, Type string
	Payload          any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []event
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key, eventType string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event{topic, key, eventType, payload})
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeSearcher struct {
	ids []uint
	err error
}

func (f fakeSearcher) SearchIDs(context.Context, string, int) ([]uint, error) {
	return f.ids, f.err
}

var errBackend = errors.New("backend down")

func newUser(t *testing.T, r *repo.GormRepo) uuid.UUID {
	t.Helper()
	u := &models.User{Name: "Reader", Email: uuid.NewString() + "@biblion.test", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u.ID
}

func fixedNow() time.Time {
	return time.Date(2024, time.July, 14, 9, 30, 0, 0, time.UTC)
}

func setup(t *testing.T) (*repo.GormRepo, *fakePublisher) {
	t.Helper()
	return repotest.New(t), &fakePublisher{}
}
