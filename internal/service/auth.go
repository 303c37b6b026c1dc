package service

import (
	"context"
	"time"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/lib/job"
	"github.com/studykit/studykit/internal/lib/password"
	"github.com/studykit/studykit/internal/lib/token"
	"github.com/studykit/studykit/internal/repository"
	"github.com/studykit/studykit/internal/server"
)

// AuthService handles registration and login.
type AuthService struct {
	server *server.Server
	users  *repository.UserRepository
	tokens *token.Manager
}

func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		users:  repos.User,
		tokens: token.NewManager(
			s.Config.Auth.SecretKey,
			time.Duration(s.Config.Auth.TokenTTLHours)*time.Hour,
		),
	}
}

// Register creates an account, queues the welcome email, and returns
// the user with a fresh access token. A duplicate email surfaces as a
// unique violation and maps to USER_ALREADY_EXISTS downstream.
func (svc *AuthService) Register(ctx context.Context, email, plainPassword, firstName string) (*repository.User, string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}

	user, err := svc.users.Create(ctx, email, hash, firstName)
	if err != nil {
		return nil, "", err
	}

	// Email delivery must not block or fail registration.
	task, err := job.NewWelcomeEmailTask(user.Email, user.FirstName)
	if err == nil {
		_, err = svc.server.Job.Client.Enqueue(task)
	}
	if err != nil {
		svc.server.Logger.Error().Err(err).Str("email", user.Email).Msg("Failed to enqueue welcome email")
	}

	accessToken, err := svc.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, accessToken, nil
}

// Login verifies credentials and returns the user with a fresh access
// token. Unknown email and wrong password produce the same 401 so the
// endpoint cannot be used to probe for accounts.
func (svc *AuthService) Login(ctx context.Context, email, plainPassword string) (*repository.User, string, error) {
	invalid := errs.NewUnauthorizedError("Invalid email or password", true)

	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", invalid
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", invalid
	}

	accessToken, err := svc.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return user, accessToken, nil
}
