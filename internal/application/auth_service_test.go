package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

// testPasswordParams keeps key derivation cheap in tests.
var testPasswordParams = PasswordParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func newAuthService(users *stubUserStore) *AuthService {
	service := NewAuthService(users, NewTokenIssuer([]byte("test-secret"), time.Hour, nil), nil)
	service.passwordParams = testPasswordParams
	service.idGenerator = sequentialIDs("user")
	return service
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates the account and logs it in", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{}
		service := newAuthService(users)

		result, err := service.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "  Alice@Example.COM ",
			Password: "s3cret",
			TimeZone: "America/New_York",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if result.User.Email != "alice@example.com" {
			t.Fatalf("expected normalized email, got %q", result.User.Email)
		}
		if result.Token == "" {
			t.Fatal("expected a token")
		}

		principal, err := service.VerifyToken(context.Background(), result.Token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if principal.UserID != result.User.ID {
			t.Fatalf("token resolved to %q, want %q", principal.UserID, result.User.ID)
		}
	})

	t.Run("defaults the time zone", func(t *testing.T) {
		t.Parallel()

		service := newAuthService(&stubUserStore{})
		result, err := service.Register(context.Background(), RegisterParams{
			Name: "Alice", Email: "alice@example.com", Password: "s3cret",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if result.User.TimeZone != DefaultTimeZone {
			t.Fatalf("time zone = %q, want %q", result.User.TimeZone, DefaultTimeZone)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{}
		service := newAuthService(users)

		params := RegisterParams{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
		if _, err := service.Register(context.Background(), params); err != nil {
			t.Fatalf("first Register: %v", err)
		}

		params.Name = "Other Alice"
		if _, err := service.Register(context.Background(), params); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if len(users.users) != 1 {
			t.Fatalf("expected one stored user, got %d", len(users.users))
		}
	})

	t.Run("rejects missing and malformed input", func(t *testing.T) {
		t.Parallel()

		service := newAuthService(&stubUserStore{})

		cases := map[string]RegisterParams{
			"missing name":     {Email: "alice@example.com", Password: "s3cret"},
			"missing email":    {Name: "Alice", Password: "s3cret"},
			"malformed email":  {Name: "Alice", Email: "not-an-address", Password: "s3cret"},
			"missing password": {Name: "Alice", Email: "alice@example.com"},
			"bad time zone":    {Name: "Alice", Email: "alice@example.com", Password: "s3cret", TimeZone: "Mars/Olympus"},
		}
		for name, params := range cases {
			if _, err := service.Register(context.Background(), params); ErrorKind(err) != "validation" {
				t.Errorf("%s: expected a validation error, got %v", name, err)
			}
		}
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := &stubUserStore{}
	service := newAuthService(users)
	if _, err := service.Register(context.Background(), RegisterParams{
		Name: "Alice", Email: "alice@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("issues a token for valid credentials", func(t *testing.T) {
		t.Parallel()

		result, err := service.Login(context.Background(), LoginParams{Email: "ALICE@example.com", Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.Token == "" || result.User.Name != "Alice" {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		_, err := service.Login(context.Background(), LoginParams{Email: "alice@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects an unknown email the same way", func(t *testing.T) {
		t.Parallel()

		_, err := service.Login(context.Background(), LoginParams{Email: "nobody@example.com", Password: "s3cret"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	t.Run("rejects garbage tokens", func(t *testing.T) {
		t.Parallel()

		service := newAuthService(&stubUserStore{})
		if _, err := service.VerifyToken(context.Background(), "not-a-token"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		t.Parallel()

		users := &stubUserStore{}
		service := newAuthService(users)
		result, err := service.Register(context.Background(), RegisterParams{
			Name: "Alice", Email: "alice@example.com", Password: "s3cret",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}

		// Same secret, clock pushed past the TTL.
		late := NewTokenIssuer([]byte("test-secret"), time.Hour, fixedClock(time.Now().Add(2*time.Hour)))
		expired := &AuthService{users: users, tokens: late, logger: service.logger}
		if _, err := expired.VerifyToken(context.Background(), result.Token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("rejects tokens for deleted users", func(t *testing.T) {
		t.Parallel()

		service := newAuthService(&stubUserStore{})
		token, err := service.tokens.Issue("ghost")
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if _, err := service.VerifyToken(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
