package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/user"
	"github.com/grocify/price-service/internal/user/dto"
	"github.com/grocify/price-service/pkg/apperrors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userUseCase struct {
	repo   user.Repository
	logger *zap.Logger
}

func NewUserUseCase(repo user.Repository, logger *zap.Logger) user.UseCase {
	return &userUseCase{repo: repo, logger: logger}
}

func (uc *userUseCase) Signup(ctx context.Context, input *dto.SignupInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if len(username) < 3 {
		return nil, apperrors.Validationf("Username must be at least 3 characters long")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validationf("Invalid email format")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.Validationf("Password must be at least 6 characters long")
	}

	if existing, err := uc.repo.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.Conflictf("Username already exists")
	}
	if existing, err := uc.repo.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.Conflictf("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.Validationf("Missing email or password")
	}

	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}
