package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/user/dto"
	"github.com/grocify/price-service/pkg/apperrors"
)

type fakeUserRepo struct {
	byUsername map[string]*model.User
	byEmail    map[string]*model.User
	created    []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func seedUser(t *testing.T, username, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &model.User{
		BaseModel:    model.BaseModel{ID: "u-1"},
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
}

func TestSignupValidation(t *testing.T) {
	uc := NewUserUseCase(&fakeUserRepo{}, zap.NewNop())

	cases := []struct {
		name  string
		input dto.SignupInput
	}{
		{"short username", dto.SignupInput{Username: "ab", Email: "a@example.com", Password: "secret1"}},
		{"bad email", dto.SignupInput{Username: "alice", Email: "not-an-email", Password: "secret1"}},
		{"short password", dto.SignupInput{Username: "alice", Email: "a@example.com", Password: "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Signup(context.Background(), &tc.input); !errors.Is(err, apperrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSignupConflicts(t *testing.T) {
	existing := seedUser(t, "alice", "alice@example.com", "secret1")
	repo := &fakeUserRepo{
		byUsername: map[string]*model.User{"alice": existing},
		byEmail:    map[string]*model.User{"alice@example.com": existing},
	}
	uc := NewUserUseCase(repo, zap.NewNop())

	_, err := uc.Signup(context.Background(), &dto.SignupInput{Username: "alice", Email: "other@example.com", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected username conflict, got %v", err)
	}

	_, err = uc.Signup(context.Background(), &dto.SignupInput{Username: "bob", Email: "ALICE@example.com", Password: "secret1"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected email conflict regardless of case, got %v", err)
	}
}

func TestSignupHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewUserUseCase(repo, zap.NewNop())

	u, err := uc.Signup(context.Background(), &dto.SignupInput{Username: "alice", Email: "Alice@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "secret1" || u.PasswordHash == "" {
		t.Fatal("password stored unhashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("stored hash does not match the password")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}
}

func TestLoginSuccess(t *testing.T) {
	existing := seedUser(t, "alice", "alice@example.com", "secret1")
	repo := &fakeUserRepo{byEmail: map[string]*model.User{"alice@example.com": existing}}
	uc := NewUserUseCase(repo, zap.NewNop())

	u, err := uc.Login(context.Background(), &dto.LoginInput{Email: " Alice@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != existing.ID {
		t.Fatalf("logged in wrong user: %q", u.ID)
	}
}

func TestLoginFailures(t *testing.T) {
	existing := seedUser(t, "alice", "alice@example.com", "secret1")
	repo := &fakeUserRepo{byEmail: map[string]*model.User{"alice@example.com": existing}}
	uc := NewUserUseCase(repo, zap.NewNop())

	if _, err := uc.Login(context.Background(), &dto.LoginInput{Email: "", Password: "secret1"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}
	if _, err := uc.Login(context.Background(), &dto.LoginInput{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
	if _, err := uc.Login(context.Background(), &dto.LoginInput{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
}
