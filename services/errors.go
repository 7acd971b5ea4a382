package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Validation failures, rejected before any write.
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrNicknameRequired = errors.New("nickname is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("invalid member role")
	ErrInvalidStatus    = errors.New("invalid tournament status")
	ErrInvalidPayStatus = errors.New("invalid payment status")
	ErrInvalidCapacity  = errors.New("tournament max teams must be positive")
	ErrNegativeAmount   = errors.New("payment amount must not be negative")
	ErrNegativeScore    = errors.New("match scores must not be negative")
	ErrSameTeamTwice    = errors.New("home and visitor team must differ")
	ErrPartialResult    = errors.New("both scores must be recorded together")
	ErrInvalidDateRange = errors.New("tournament end date must not precede start date")
	ErrUploaderDisabled = errors.New("media storage is not configured")
	ErrUnsupportedImage = errors.New("unsupported image content type")

	// Business rules, evaluated after uniqueness and reference checks.
	ErrNameTaken              = errors.New("name is already in use")
	ErrCaptainAlreadyAssigned = errors.New("user is already captain of another team")
	ErrUserAlreadyOnTeam      = errors.New("user already belongs to a team")

	// Authentication.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
