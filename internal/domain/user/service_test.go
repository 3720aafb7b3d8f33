package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/pkg/jwt"
)

type repoStub struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newRepoStub() *repoStub {
	return &repoStub{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
}

func (r *repoStub) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *repoStub) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	return r.byID[id], nil
}

func (r *repoStub) GetByEmail(_ context.Context, email string) (*User, error) {
	return r.byEmail[email], nil
}

func (r *repoStub) List(context.Context, int, int) ([]*User, int, error) { return nil, 0, nil }
func (r *repoStub) UpdateRole(context.Context, uuid.UUID, Role) error    { return nil }
func (r *repoStub) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

func newTestService() (*Service, *repoStub) {
	repo := newRepoStub()
	return NewService(repo, jwt.NewService("test-secret", time.Hour)), repo
}

func TestSignupCreatesCustomerWithZeroBalance(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Signup(context.Background(), &SignupRequest{
		Email: "  Buyer@VTU.ng ", FullName: "Buyer", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if u.Email != "buyer@vtu.ng" {
		t.Fatalf("email must be normalized, got %q", u.Email)
	}
	if u.Role != RoleCustomer || u.Status != StatusActive || u.Balance != 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if !u.PasswordHash.Valid || u.PasswordHash.String == "s3cret-pass" {
		t.Fatal("password must be stored hashed")
	}
	if _, ok := repo.byEmail["buyer@vtu.ng"]; !ok {
		t.Fatal("expected user persisted")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	req := &SignupRequest{Email: "a@b.ng", FullName: "A", Password: "s3cret-pass"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Signup(context.Background(), req); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Signup(context.Background(), &SignupRequest{
		Email: "a@b.ng", FullName: "A", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, u, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.ng", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == "" || u == nil {
		t.Fatal("expected token and user")
	}

	_, _, err = svc.Login(context.Background(), &LoginRequest{Email: "a@b.ng", Password: "wrong"})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, _, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@b.ng", Password: "s3cret-pass"})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginRejectsBlockedAccount(t *testing.T) {
	svc, repo := newTestService()
	u, err := svc.Signup(context.Background(), &SignupRequest{
		Email: "a@b.ng", FullName: "A", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	repo.byID[u.ID].Status = StatusBlocked

	if _, _, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.ng", Password: "s3cret-pass"}); err != ErrBlocked {
		t.Fatalf("expected ErrBlocked, got %v", err)
	}
}
