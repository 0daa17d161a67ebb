package application

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeZone is applied to accounts registered without an explicit zone.
const DefaultTimeZone = "Asia/Kolkata"

// AuthService registers accounts, authenticates logins, and resolves bearer
// tokens back into principals.
type AuthService struct {
	users          UserStore
	tokens         *TokenIssuer
	passwordParams PasswordParams
	idGenerator    func() string
	logger         *slog.Logger
}

// NewAuthService builds an AuthService with sensible defaults for the
// optional collaborators.
func NewAuthService(users UserStore, tokens *TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		passwordParams: DefaultPasswordParams,
		idGenerator:    uuid.NewString,
		logger:         defaultLogger(logger),
	}
}

// Register creates an account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	logger := serviceLogger(ctx, s.logger, "auth", "register")

	params.Name = strings.TrimSpace(params.Name)
	params.Email = normalizeEmail(params.Email)
	params.TimeZone = strings.TrimSpace(params.TimeZone)

	vErr := &ValidationError{}
	if params.Name == "" {
		vErr.add("name", "Name is required")
	}
	if params.Email == "" {
		vErr.add("email", "Email is required")
	} else if _, err := mail.ParseAddress(params.Email); err != nil {
		vErr.add("email", "Email is invalid")
	}
	if params.Password == "" {
		vErr.add("password", "Password is required")
	}
	if params.TimeZone == "" {
		params.TimeZone = DefaultTimeZone
	} else if _, err := time.LoadLocation(params.TimeZone); err != nil {
		vErr.add("timezone", "Time zone is invalid")
	}
	if vErr.HasErrors() {
		logger.Debug("registration rejected", "error_kind", ErrorKind(vErr))
		return AuthResult{}, vErr
	}

	if _, err := s.users.GetUserCredentialsByEmail(ctx, params.Email); err == nil {
		return AuthResult{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := HashPassword(params.Password, s.passwordParams)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.CreateUser(ctx, NewUser{
		ID:           s.idGenerator(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		TimeZone:     params.TimeZone,
	})
	if err != nil {
		// Concurrent registration of the same email loses on the unique
		// index rather than on the read above.
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	logger.Info("user registered", "user_id", user.ID)
	return AuthResult{Token: token, User: user}, nil
}

// Login authenticates an email and password pair and issues a token.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	logger := serviceLogger(ctx, s.logger, "auth", "login")

	email := normalizeEmail(params.Email)
	if email == "" || params.Password == "" {
		return AuthResult{}, validationError("Email and password are required")
	}

	credentials, err := s.users.GetUserCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := VerifyPassword(credentials.PasswordHash, params.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Debug("login rejected", "user_id", credentials.User.ID)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(credentials.User.ID)
	if err != nil {
		return AuthResult{}, err
	}

	logger.Info("user logged in", "user_id", credentials.User.ID)
	return AuthResult{Token: token, User: credentials.User}, nil
}

// VerifyToken resolves a bearer token into the principal it belongs to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (Principal, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return Principal{}, ErrUnauthorized
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, ErrUnauthorized
		}
		return Principal{}, err
	}

	return Principal{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		TimeZone: user.TimeZone,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
