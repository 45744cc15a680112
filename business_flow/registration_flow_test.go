package businessflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/enrolld/enrolld/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository. ClaimEmail mirrors the
// set-if-absent semantics of the real store so concurrency tests are
// meaningful.
type fakeUserRepo struct {
	mu      sync.Mutex
	counter uint64
	emails  map[string]uint64
	users   map[uint64]*models.User

	calls    int
	nextErr  error
	existErr error
	claimErr error
	saveErr  error
	allErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		emails: make(map[string]uint64),
		users:  make(map[uint64]*models.User),
	}
}

func (f *fakeUserRepo) NextID(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.nextErr != nil {
		return 0, f.nextErr
	}
	f.counter++
	return f.counter, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.existErr != nil {
		return false, f.existErr
	}
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeUserRepo) ClaimEmail(ctx context.Context, email string, id uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.claimErr != nil {
		return false, f.claimErr
	}
	if _, ok := f.emails[email]; ok {
		return false, nil
	}
	f.emails[email] = id
	return true, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) ByID(ctx context.Context, id uint64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) All(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	users := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	flow := NewRegistrationFlow(repo)

	resp, err := flow.Register(context.Background(), &dto.RegisterRequest{
		Name:  "  Ann Example  ",
		Email: " Ann@Example.COM ",
	}, NewClientMetadata("10.0.0.1", "test-agent"))

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, uint64(1), resp.UserID)
	assert.Equal(t, "ann@example.com", resp.Email)

	stored := repo.users[1]
	require.NotNil(t, stored)
	assert.Equal(t, "Ann Example", stored.Name)
	assert.Equal(t, "ann@example.com", stored.Email)
	assert.Equal(t, uint64(1), repo.emails["ann@example.com"])
}

func TestRegister_InvalidEmailDoesNotTouchStore(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"missing at sign", "not-an-email"},
		{"missing domain", "ann@"},
		{"missing local part", "@example.com"},
		{"empty", ""},
		{"spaces only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			flow := NewRegistrationFlow(repo)

			_, err := flow.Register(context.Background(), &dto.RegisterRequest{
				Name:  "Ann",
				Email: tt.email,
			}, nil)

			require.Error(t, err)
			assert.True(t, IsInvalidEmail(err))
			assert.Zero(t, repo.calls, "store must not be touched for invalid input")
		})
	}
}

func TestRegister_DuplicateEmailAnyCasing(t *testing.T) {
	repo := newFakeUserRepo()
	flow := NewRegistrationFlow(repo)

	_, err := flow.Register(context.Background(), &dto.RegisterRequest{
		Name:  "Ann",
		Email: "ann@example.com",
	}, nil)
	require.NoError(t, err)

	for _, email := range []string{"ann@example.com", "ANN@EXAMPLE.COM", " Ann@Example.com "} {
		_, err := flow.Register(context.Background(), &dto.RegisterRequest{
			Name:  "Impostor",
			Email: email,
		}, nil)
		require.Error(t, err)
		assert.True(t, IsEmailAlreadyExists(err), "email %q must be rejected as duplicate", email)
	}

	assert.Len(t, repo.users, 1)
}

func TestRegister_ConcurrentSameEmailSingleWinner(t *testing.T) {
	repo := newFakeUserRepo()
	flow := NewRegistrationFlow(repo)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = flow.Register(context.Background(), &dto.RegisterRequest{
				Name:  fmt.Sprintf("Racer %d", i),
				Email: "race@example.com",
			}, nil)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, IsEmailAlreadyExists(err))
		}
	}
	assert.Equal(t, 1, winners, "exactly one registration must win")
	assert.Len(t, repo.users, 1)
	assert.Len(t, repo.emails, 1)
}

func TestRegister_StoreFailures(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(*fakeUserRepo)
	}{
		{"email index check fails", func(r *fakeUserRepo) { r.existErr = storeErr }},
		{"id allocation fails", func(r *fakeUserRepo) { r.nextErr = storeErr }},
		{"email claim fails", func(r *fakeUserRepo) { r.claimErr = storeErr }},
		{"record write fails", func(r *fakeUserRepo) { r.saveErr = storeErr }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			tt.setup(repo)
			flow := NewRegistrationFlow(repo)

			_, err := flow.Register(context.Background(), &dto.RegisterRequest{
				Name:  "Ann",
				Email: "ann@example.com",
			}, nil)

			require.Error(t, err)
			assert.True(t, IsStoreUnavailable(err))
		})
	}
}
