package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/finbridge/cashkick-service/internal/config"
	"github.com/finbridge/cashkick-service/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTTTL:               time.Hour,
		DefaultRate:          12,
		DefaultCreditBalance: 10000,
		DefaultTermCap:       12,
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and applies platform defaults", func(t *testing.T) {
		store := newFakeStore()
		svc := NewUserService(store, testLogger(), testConfig())

		user, err := svc.Signup(ctx, models.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "s3cret!pass"})
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		if user.PasswordHash == "s3cret!pass" {
			t.Fatal("password stored in plain text")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!pass")); err != nil {
			t.Fatalf("stored hash does not verify: %v", err)
		}
		if user.Rate != 12 || user.CreditBalance != 10000 || user.TermCap != 12 {
			t.Errorf("platform defaults not applied: %+v", user)
		}
	})

	t.Run("store failure is classified", func(t *testing.T) {
		store := newFakeStore()
		store.failCreateUser = true
		svc := NewUserService(store, testLogger(), testConfig())

		if _, err := svc.Signup(ctx, models.SignupInput{Name: "Bob", Email: "bob@example.com", Password: "pw"}); !errors.Is(err, ErrUserCreate) {
			t.Fatalf("got %v, want ErrUserCreate", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	setup := func(t *testing.T) (*fakeStore, *UserService, *models.User) {
		t.Helper()
		store := newFakeStore()
		svc := NewUserService(store, testLogger(), cfg)
		user, err := svc.Signup(ctx, models.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "s3cret!pass"})
		if err != nil {
			t.Fatalf("seed signup failed: %v", err)
		}
		return store, svc, user
	}

	t.Run("issues a token carrying the user id", func(t *testing.T) {
		_, svc, user := setup(t)

		tokenString, err := svc.Login(ctx, "alice@example.com", "s3cret!pass")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			t.Fatalf("token does not parse: %v", err)
		}
		if claims.Subject != user.ID {
			t.Errorf("token subject = %s, want %s", claims.Subject, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, svc, _ := setup(t)
		if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, svc, _ := setup(t)
		if _, err := svc.Login(ctx, "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("rehashes password and sets balance", func(t *testing.T) {
		store := newFakeStore()
		svc := NewUserService(store, testLogger(), testConfig())
		user, err := svc.Signup(ctx, models.SignupInput{Name: "Alice", Email: "alice@example.com", Password: "old-pass"})
		if err != nil {
			t.Fatalf("seed signup failed: %v", err)
		}

		newPass := "new-pass"
		newBalance := 2500.0
		if err := svc.UpdateUser(ctx, user.ID, models.UserUpdateInput{Password: &newPass, CreditBalance: &newBalance}); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}

		updated := store.users[user.ID]
		if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPass)); err != nil {
			t.Errorf("updated hash does not verify: %v", err)
		}
		if updated.CreditBalance != 2500 {
			t.Errorf("credit balance = %v, want 2500", updated.CreditBalance)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newFakeStore(), testLogger(), testConfig())
		balance := 1.0
		if err := svc.UpdateUser(ctx, "missing", models.UserUpdateInput{CreditBalance: &balance}); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("got %v, want ErrUserNotFound", err)
		}
	})
}

func TestUsers(t *testing.T) {
	store := newFakeStore()
	seedUser(store, "u1", 12, 10000)
	seedUser(store, "u2", 8, 5000)
	svc := NewUserService(store, testLogger(), testConfig())

	users, err := svc.Users(context.Background())
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
}
