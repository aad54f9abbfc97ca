package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules. These block the action before any
	// write is attempted.
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrDistanceRequired    = errors.New("run distance is required and must be a non-negative number")
	ErrDateRequired        = errors.New("run date is required")
	ErrShoeNameRequired    = errors.New("shoe name is required")
	ErrClubNameRequired    = errors.New("club name is required")
	ErrAnnouncementInvalid = errors.New("announcement title and body are required")

	// Conflicts. Joining a club twice is reported as a conflict but the
	// caller should surface it as a notice, not a failure.
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrAlreadyClubMember = errors.New("already a member of this club")

	// Authentication and authorization.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrAdminActionForbidden   = errors.New("only the club admin can perform this action")
	ErrFounderRequired        = errors.New("a founder subscription is required to create clubs")
	ErrCannotRemoveAdmin      = errors.New("the club admin cannot be removed from the club")

	// ErrStorageUnavailable is returned by media upload operations when the
	// server runs without an object store configured.
	ErrStorageUnavailable = errors.New("media storage is not configured")

	// Entity-specific not-found errors; more context than plain ErrNotFound.
	ErrUserNotFound         = errors.New("user not found")
	ErrRunNotFound          = errors.New("run not found")
	ErrShoeNotFound         = errors.New("shoe not found")
	ErrClubNotFound         = errors.New("club not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrMemberNotFound       = errors.New("club member not found")
)
