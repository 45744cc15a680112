package repository

import (
	"context"
	"fmt"

	"github.com/enrolld/enrolld/models"
	"github.com/enrolld/enrolld/utils"
	"github.com/redis/go-redis/v9"
)

// AdminRepositoryImpl implements AdminRepository on Redis
type AdminRepositoryImpl struct {
	rc *redis.Client
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(rc *redis.Client) AdminRepository {
	return &AdminRepositoryImpl{rc: rc}
}

// Exists reports whether the singleton account record is present
func (r *AdminRepositoryImpl) Exists(ctx context.Context) (bool, error) {
	n, err := r.rc.Exists(ctx, utils.AdminAccountKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check admin account: %w", err)
	}
	return n > 0, nil
}

// Create writes the singleton account record
func (r *AdminRepositoryImpl) Create(ctx context.Context, account *models.AdminAccount) error {
	if err := r.rc.HSet(ctx, utils.AdminAccountKey, account.Fields()).Err(); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

// Get retrieves the singleton account record
func (r *AdminRepositoryImpl) Get(ctx context.Context) (*models.AdminAccount, error) {
	fields, err := r.rc.HGetAll(ctx, utils.AdminAccountKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read admin account: %w", err)
	}
	return models.AdminFromFields(fields), nil
}
