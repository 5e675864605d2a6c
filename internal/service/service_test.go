package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/dom/notes-api/internal/auth"
	"github.com/dom/notes-api/internal/domain"
	"github.com/dom/notes-api/internal/repository/memory"
	"github.com/dom/notes-api/internal/service"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret"

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(event domain.NoteEvent) {
	m.Called(event)
}

// stepClock advances by one second on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newAccountService(t *testing.T) (*service.AccountService, *auth.TokenCodec) {
	t.Helper()
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	svc := service.NewAccountService(
		memory.NewUserRepository(),
		auth.NewBcryptHasher(bcrypt.MinCost),
		codec,
	)
	return svc, codec
}
