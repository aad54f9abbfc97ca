package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lawrencemparker/Stride4Stride/models"
	"github.com/lawrencemparker/Stride4Stride/repositories"
	"github.com/lawrencemparker/Stride4Stride/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error)
	UnlockFounder(ctx context.Context, userID int) error
	CancelFounderSubscription(ctx context.Context, userID int) error
	UploadAvatar(ctx context.Context, userID int, contentType string, r io.Reader) (*models.User, error)
}

// UpdateProfileInput carries profile edits. Nil fields are left unchanged.
// Edits here never propagate into member snapshots already embedded in
// clubs; those keep the name and phone captured at join time.
type UpdateProfileInput struct {
	FullName     *string `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	ShareConsent *bool   `json:"share_consent"`
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrValidationFailed
		}
		user.FullName = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, ErrValidationFailed
		}
		user.Email = email
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.ShareConsent != nil {
		user.ShareConsent = input.ShareConsent
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}

	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

// UnlockFounder grants the club-creation entitlement.
func (s *userService) UnlockFounder(ctx context.Context, userID int) error {
	if err := s.userRepo.SetFounder(ctx, nil, userID, true); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set founder flag for user %d: %w", userID, err)
	}
	return nil
}

// CancelFounderSubscription revokes the entitlement. Clubs the user already
// created are untouched: founder status gates creating new clubs, not
// keeping existing ones.
func (s *userService) CancelFounderSubscription(ctx context.Context, userID int) error {
	if err := s.userRepo.SetFounder(ctx, nil, userID, false); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to clear founder flag for user %d: %w", userID, err)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID int, contentType string, r io.Reader) (*models.User, error) {
	// The server runs without an object store; uploads report unavailable
	// instead of panicking on the nil uploader.
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	key := fmt.Sprintf("avatars/users/%d", userID)
	result, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", userID, err)
	}

	oldKey := user.AvatarKey
	if err := s.userRepo.SetAvatarKey(ctx, userID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store avatar key for user %d: %w", userID, err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous avatar object",
				slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	user.AvatarKey = &result.Key
	user.PasswordHash = ""
	s.resolveAvatarURL(user)
	return user, nil
}

func (s *userService) resolveAvatarURL(user *models.User) {
	if user.AvatarKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}
}
