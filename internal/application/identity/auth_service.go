package identity

import (
	"context"

	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/domain/shared"
	"github.com/riya0704/LeadTrak/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for any login failure. The message does
// not reveal whether the email exists.
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles registration and login
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
	}
}

// Register creates a new account. The very first account becomes the admin;
// everyone after that starts as a regular user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	var user *identity.User
	if count == 0 {
		user, err = identity.NewAdminUser(req.Name, req.Email, req.Password)
	} else {
		user, err = identity.NewUser(req.Name, req.Email, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// CurrentUser loads the user identified by validated token claims
func (s *AuthService) CurrentUser(ctx context.Context, claims *auth.Claims) (*identity.User, error) {
	id, err := claims.ParsedUserID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:        NewUserResponse(user),
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}
