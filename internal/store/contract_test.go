package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
)

// UserStoreSuite holds the behaviour every UserStore must share. Concrete
// suites set newStore; integration suites point it at a real database.
type UserStoreSuite struct {
	suite.Suite
	newStore func() UserStore
	store    UserStore
}

func (s *UserStoreSuite) SetupTest() {
	s.store = s.newStore()
}

func newUser(email string) *models.User {
	return &models.User{
		Name:     "Ann",
		Email:    email,
		Password: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		Aadhaar:  "ZW5jcnlwdGVk",
	}
}

func (s *UserStoreSuite) TestCreateAssignsIdentity() {
	ctx := context.Background()
	user := newUser("ann@x.com")

	s.Require().NoError(s.store.Create(ctx, user))
	s.NotEmpty(user.ID)
	s.False(user.CreatedAt.IsZero())

	byID, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Ann", byID.Name)
	s.Equal("ann@x.com", byID.Email)
	s.Equal(user.Password, byID.Password)
	s.Equal(user.Aadhaar, byID.Aadhaar)

	byEmail, err := s.store.FindByEmail(ctx, "ann@x.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)
}

func (s *UserStoreSuite) TestDuplicateEmailRejected() {
	ctx := context.Background()
	first := newUser("dup@x.com")
	s.Require().NoError(s.store.Create(ctx, first))

	second := newUser("dup@x.com")
	second.Name = "Other"
	s.Require().ErrorIs(s.store.Create(ctx, second), ErrDuplicateEmail)

	found, err := s.store.FindByEmail(ctx, "dup@x.com")
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
	s.Equal("Ann", found.Name)
}

func (s *UserStoreSuite) TestConcurrentCreateSameEmail() {
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.store.Create(ctx, newUser("race@x.com")); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				s.ErrorIs(err, ErrDuplicateEmail)
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
}

func (s *UserStoreSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByEmail(ctx, "missing@x.com")
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.FindByID(ctx, "not-a-valid-id")
	s.ErrorIs(err, ErrNotFound)
}

func TestMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, &UserStoreSuite{newStore: func() UserStore { return NewMemoryUserStore() }})
}

func TestMemoryUserStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()
	user := newUser("copy@x.com")
	if err := s.Create(ctx, user); err != nil {
		t.Fatal(err)
	}

	found, err := s.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	found.Name = "Mutated"

	again, _ := s.FindByID(ctx, user.ID)
	if again.Name != "Ann" {
		t.Fatalf("store record was mutated through returned pointer: %q", again.Name)
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 user, got %d", s.Count())
	}
}
