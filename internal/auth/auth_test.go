package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/farxc/listagem-empenhos/internal/logger"
	"github.com/farxc/listagem-empenhos/internal/store"
)

type fakeUserRepo struct {
	users map[string]*store.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*store.User{}}
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*store.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *store.User) error {
	f.users[user.Username] = user
	return nil
}

func testService(repo UserRepo) *Service {
	return NewService(repo, logger.New(logger.LevelError))
}

func TestHashPassword_KnownVector(t *testing.T) {
	t.Parallel()

	// sha256("senha123")
	want := "55a5e9e78207b4df8699d60886fa070079463547b095d1a05bc719bb4e6cd251"
	if got := HashPassword("senha123"); got != want {
		t.Fatalf("HashPassword = %s, want %s", got, want)
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := testService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "maria", "senha123", store.RoleUser, "DEPTO DE FINANÇAS"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Verify(ctx, "maria", "senha123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Role != store.RoleUser || user.Department != "DEPTO DE FINANÇAS" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Verify(ctx, "maria", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := svc.Verify(ctx, "nobody", "senha123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}

func TestVerify_TrimsUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := testService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "  joao  ", "abc", store.RoleAdmin, "Todos"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Verify(ctx, " joao ", "abc"); err != nil {
		t.Fatalf("verify trimmed: %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := testService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "maria", "a", store.RoleUser, "X"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(ctx, "maria", "b", store.RoleUser, "X"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("duplicate register: got %v", err)
	}
}

func TestRegister_RequiresFields(t *testing.T) {
	t.Parallel()

	svc := testService(newFakeUserRepo())
	if err := svc.Register(context.Background(), "", "pw", store.RoleUser, "X"); err == nil {
		t.Fatalf("expected error for empty username")
	}
	if err := svc.Register(context.Background(), "u", "", store.RoleUser, "X"); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
