package service

import (
	"context"
	"meetapp/cmd/internal/auth"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *entity.User) error
}

type TokenIssuer interface {
	GenerateToken(userID int) (string, time.Time, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest changes only the fields present. Changing the password
// needs the old one and a matching confirmation.
type UpdateUserRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=80"`
	Email           *string `json:"email" validate:"omitempty,email"`
	OldPassword     *string `json:"old_password" validate:"omitempty,max=72"`
	Password        *string `json:"password" validate:"omitempty,min=6,max=72"`
	ConfirmPassword *string `json:"confirm_password" validate:"omitempty,max=72"`
}

type SessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Tokens   TokenIssuer
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, tokens TokenIssuer, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Tokens: tokens, Validate: validate}
}

func (u *DefaultUserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}

	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	err = u.UserRepo.Save(ctx, user)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

func (u *DefaultUserService) UpdateUser(ctx context.Context, req *UpdateUserRequest, viewerID int) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByID(ctx, viewerID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.NotFoundError
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := u.UserRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			log.Errorf("failed to check if email is taken: %v", err)
			return nil, apierror.InternalServerError
		}
		if taken {
			return nil, apierror.UserAlreadyExistsError
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		if apierr := u.changePassword(user, req); apierr != nil {
			return nil, apierr
		}
	} else if req.OldPassword != nil {
		return nil, apierror.NewMissingParamError("password")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	err = u.UserRepo.Save(ctx, user)
	if err != nil {
		log.Errorf("failed to update user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

func (u *DefaultUserService) changePassword(user *entity.User, req *UpdateUserRequest) apierror.ErrorResponse {
	if req.OldPassword == nil {
		return apierror.NewMissingParamError("old_password")
	}
	if req.ConfirmPassword == nil || *req.ConfirmPassword != *req.Password {
		return apierror.PasswordConfirmationError
	}

	ok, err := auth.CheckPassword(user.PasswordHash, *req.OldPassword)
	if err != nil {
		log.Errorf("failed to verify password of user %d: %v", user.ID, err)
		return apierror.InternalServerError
	}
	if !ok {
		return apierror.OldPasswordMismatch
	}

	hash, err := auth.HashPassword(*req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return apierror.InternalServerError
	}
	user.PasswordHash = hash
	return nil
}

func (u *DefaultUserService) Login(ctx context.Context, req *SessionRequest) (*SessionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.CredentialsMismatch
	}

	ok, err := auth.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		log.Errorf("failed to verify password of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	if !ok {
		return nil, apierror.CredentialsMismatch
	}

	token, expiresAt, err := u.Tokens.GenerateToken(user.ID)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      toUserResponse(user),
	}, nil
}
