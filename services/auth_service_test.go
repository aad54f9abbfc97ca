package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FullName: "Lawrence Parker",
		Email:    "Lawrence@Example.com",
		Phone:    "555-0100",
		Password: "runner123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.Email != "lawrence@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.ShareConsent == nil || !*user.ShareConsent {
		t.Error("new profile should have sharing consent granted")
	}
	if user.IsFounder {
		t.Error("new profile should not be a founder")
	}
	if !user.Onboarded {
		t.Error("onboarding flag should be set after registration")
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in response")
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "lawrence@example.com", Password: "runner123"}); err != nil {
		t.Errorf("Login() error = %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "lawrence@example.com", Password: "wrong"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("Login() with bad password error = %v, want ErrAuthInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "runner123"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want ErrAuthInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "longenough"}, ErrValidationFailed},
		{"missing email", RegisterInput{FullName: "A", Password: "longenough"}, ErrValidationFailed},
		{"short password", RegisterInput{FullName: "A", Email: "a@b.com", Password: "short"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	input := RegisterInput{FullName: "A", Email: "a@b.com", Password: "longenough"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrUserEmailConflict) {
		t.Errorf("second Register() error = %v, want ErrUserEmailConflict", err)
	}
}
