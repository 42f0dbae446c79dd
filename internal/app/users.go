package app

import (
	"context"
	"errors"

	"sentimentpulse/internal/auth"
	"sentimentpulse/internal/domain"
)

type UserService struct {
	users  domain.UserRepository
	tokens *auth.TokenIssuer
}

func NewUserService(ur domain.UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{users: ur, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, email string, fullName *string, password string) (domain.User, error) {
	return s.create(ctx, email, fullName, password, domain.RoleUser)
}

// CreateUser is the admin path: same as Register but with a chosen role.
func (s *UserService) CreateUser(ctx context.Context, email string, fullName *string, password, role string) (domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	return s.create(ctx, email, fullName, password, role)
}

func (s *UserService) create(ctx context.Context, email string, fullName *string, password, role string) (domain.User, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return domain.User{}, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.InsertUser(ctx, domain.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashed,
		Role:           role,
		IsActive:       true,
	})
}

// Login verifies credentials and returns a signed bearer token. A
// missing user and a wrong password are indistinguishable to callers.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.VerifyPassword(password, user.HashedPassword) {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Email)
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.GetUserByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ID == actorID {
		return domain.ErrSelfDelete
	}
	return s.users.DeleteUser(ctx, userID)
}
