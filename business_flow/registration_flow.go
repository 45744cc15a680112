package businessflow

import (
	"context"
	"log"
	"strings"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/enrolld/enrolld/metrics"
	"github.com/enrolld/enrolld/models"
	"github.com/enrolld/enrolld/repository"
	"github.com/go-playground/validator/v10"
)

// RegistrationFlow handles the student registration business logic
type RegistrationFlow interface {
	Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error)
}

// RegistrationFlowImpl implements the registration business flow
type RegistrationFlowImpl struct {
	userRepo  repository.UserRepository
	validator *validator.Validate
}

// NewRegistrationFlow creates a new registration flow instance
func NewRegistrationFlow(userRepo repository.UserRepository) RegistrationFlow {
	return &RegistrationFlowImpl{
		userRepo:  userRepo,
		validator: validator.New(),
	}
}

// Register validates and persists a new student record.
//
// The email index entry is claimed with an atomic set-if-absent before the
// record hash is written, so concurrent registrations for the same normalized
// email have exactly one winner. A loser leaves a gap in the id sequence,
// which is acceptable.
func (f *RegistrationFlowImpl) Register(ctx context.Context, req *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	// Syntactic validation happens before any store access
	if err := f.validator.Var(email, "required,email"); err != nil {
		return nil, NewBusinessError("REGISTRATION_VALIDATION_FAILED", "Invalid email format", ErrInvalidEmail)
	}

	// Cheap pre-check; ClaimEmail below remains the authoritative arbiter
	exists, err := f.userRepo.EmailExists(ctx, email)
	if err != nil {
		log.Printf("Registration failed: email index check error: %v", err)
		return nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}
	if exists {
		return nil, NewBusinessError("EMAIL_ALREADY_REGISTERED", "Email already registered", ErrEmailAlreadyExists)
	}

	id, err := f.userRepo.NextID(ctx)
	if err != nil {
		log.Printf("Registration failed: id allocation error: %v", err)
		return nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}

	claimed, err := f.userRepo.ClaimEmail(ctx, email, id)
	if err != nil {
		log.Printf("Registration failed: email claim error: %v", err)
		return nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}
	if !claimed {
		// A concurrent registration won the index entry; id gap is acceptable
		return nil, NewBusinessError("EMAIL_ALREADY_REGISTERED", "Email already registered", ErrEmailAlreadyExists)
	}

	user := &models.User{
		ID:    id,
		Name:  name,
		Email: email,
	}
	if err := f.userRepo.Save(ctx, user); err != nil {
		log.Printf("Registration failed: record write error for user %d: %v", id, err)
		return nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}

	metrics.RegistrationsTotal.Inc()
	log.Printf("New student registered: id=%d email=%s ip=%s", id, email, clientIP(metadata))

	return &dto.RegisterResponse{
		Message: "Registration successful",
		UserID:  id,
		Email:   email,
	}, nil
}

// normalizeEmail lowercases and trims the address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func clientIP(metadata *ClientMetadata) string {
	if metadata == nil {
		return ""
	}
	return metadata.IPAddress
}
