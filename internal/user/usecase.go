package user

import (
	"context"

	"github.com/grocify/price-service/internal/model"
	"github.com/grocify/price-service/internal/user/dto"
)

type UseCase interface {
	Signup(ctx context.Context, input *dto.SignupInput) (*model.User, error)
	Login(ctx context.Context, input *dto.LoginInput) (*model.User, error)
}
