package businessflow

import (
	"context"
	"log"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/enrolld/enrolld/models"
	"github.com/enrolld/enrolld/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthFlow handles administrator credential verification and the
// one-time account seed at startup
type AdminAuthFlow interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) error
	EnsureAccount(ctx context.Context, username, password string) error
}

// AdminAuthFlowImpl implements the admin authentication flow
type AdminAuthFlowImpl struct {
	adminRepo  repository.AdminRepository
	bcryptCost int
}

// NewAdminAuthFlow creates a new admin auth flow instance
func NewAdminAuthFlow(adminRepo repository.AdminRepository, bcryptCost int) AdminAuthFlow {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminAuthFlowImpl{
		adminRepo:  adminRepo,
		bcryptCost: bcryptCost,
	}
}

// Login verifies the submitted credentials against the singleton account.
// Every negative outcome (missing record, unknown username, wrong password)
// maps to the same error so nothing leaks about which part failed.
func (f *AdminAuthFlowImpl) Login(ctx context.Context, req *dto.AdminLoginRequest, metadata *ClientMetadata) error {
	if req == nil || req.Username == "" || req.Password == "" {
		return NewBusinessError("ADMIN_LOGIN_FAILED", "Invalid credentials", ErrInvalidCredentials)
	}

	account, err := f.adminRepo.Get(ctx)
	if err != nil {
		log.Printf("Admin login failed: account lookup error: %v", err)
		return NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}
	if account == nil || account.Username != req.Username {
		return NewBusinessError("ADMIN_LOGIN_FAILED", "Invalid credentials", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return NewBusinessError("ADMIN_LOGIN_FAILED", "Invalid credentials", ErrInvalidCredentials)
	}

	log.Printf("Admin logged in successfully ip=%s", clientIP(metadata))
	return nil
}

// EnsureAccount seeds the singleton admin account if it does not exist yet.
// Re-running against an existing account is a no-op, leaving the stored hash
// unchanged.
func (f *AdminAuthFlowImpl) EnsureAccount(ctx context.Context, username, password string) error {
	exists, err := f.adminRepo.Exists(ctx)
	if err != nil {
		return NewBusinessError("STORE_UNAVAILABLE", "Failed to check admin account", ErrStoreUnavailable)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), f.bcryptCost)
	if err != nil {
		return NewBusinessError("ADMIN_SEED_FAILED", "Failed to hash admin password", err)
	}

	if err := f.adminRepo.Create(ctx, &models.AdminAccount{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		return NewBusinessError("STORE_UNAVAILABLE", "Failed to create admin account", ErrStoreUnavailable)
	}

	log.Println("Admin account initialized")
	return nil
}
