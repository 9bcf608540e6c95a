package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gadgetlab/store-api/internal/core/domain"
	"github.com/gadgetlab/store-api/internal/core/ports"
)

const testJWTSecret = "test-secret"

func signupInput() ports.SignupInput {
	return ports.SignupInput{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Password: "Sup3r$ecret",
	}
}

func TestSignupCreatesConsumerByDefault(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	user, err := svc.Signup(context.Background(), signupInput())
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Role != domain.RoleConsumer {
		t.Errorf("role = %q, want CONSUMER", user.Role)
	}
	if user.ID == "" {
		t.Error("expected an assigned user id")
	}
	if user.PasswordHash == "Sup3r$ecret" {
		t.Error("password stored in clear")
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testJWTSecret, time.Hour)

	weak := []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigitsHere!", "NoSpecials123"}
	for _, pw := range weak {
		input := signupInput()
		input.Password = pw
		if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrWeakPassword) {
			t.Errorf("password %q: err = %v, want ErrWeakPassword", pw, err)
		}
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	if _, err := svc.Signup(context.Background(), signupInput()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	_, err := svc.Signup(context.Background(), signupInput())
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testJWTSecret, time.Hour)

	input := signupInput()
	input.Role = "SUPERUSER"
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginReturnsSignedToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testJWTSecret, time.Hour)

	created, err := svc.Signup(context.Background(), signupInput())
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user id = %q, want %q", user.ID, created.ID)
	}

	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if claims["sub"] != created.ID {
		t.Errorf("sub = %v, want %q", claims["sub"], created.ID)
	}
	if claims["role"] != domain.RoleConsumer {
		t.Errorf("role claim = %v, want CONSUMER", claims["role"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testJWTSecret, time.Hour)

	if _, err := svc.Signup(context.Background(), signupInput()); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "ana@example.com", "WrongPass1!")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testJWTSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "Sup3r$ecret")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
