package repository

import (
	"context"
	"fmt"

	"github.com/enrolld/enrolld/models"
	"github.com/enrolld/enrolld/utils"
	"github.com/redis/go-redis/v9"
)

// UserRepositoryImpl implements UserRepository on Redis
type UserRepositoryImpl struct {
	rc *redis.Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(rc *redis.Client) UserRepository {
	return &UserRepositoryImpl{rc: rc}
}

// NextID atomically allocates the next student id via INCR
func (r *UserRepositoryImpl) NextID(ctx context.Context) (uint64, error) {
	id, err := r.rc.Incr(ctx, utils.UserCounterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate user id: %w", err)
	}
	return uint64(id), nil
}

// EmailExists checks the email index with HEXISTS
func (r *UserRepositoryImpl) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.rc.HExists(ctx, utils.EmailIndexKey, email).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check email index: %w", err)
	}
	return exists, nil
}

// ClaimEmail writes email -> id into the index with HSETNX. The set-if-absent
// semantics make the index the single arbiter between concurrent registrations.
func (r *UserRepositoryImpl) ClaimEmail(ctx context.Context, email string, id uint64) (bool, error) {
	claimed, err := r.rc.HSetNX(ctx, utils.EmailIndexKey, email, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim email index entry: %w", err)
	}
	return claimed, nil
}

// Save writes the student record hash
func (r *UserRepositoryImpl) Save(ctx context.Context, user *models.User) error {
	if err := r.rc.HSet(ctx, user.RedisKey(), user.Fields()).Err(); err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return nil
}

// ByID retrieves a student record by id
func (r *UserRepositoryImpl) ByID(ctx context.Context, id uint64) (*models.User, error) {
	fields, err := r.rc.HGetAll(ctx, models.UserRedisKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user %d: %w", id, err)
	}
	return models.UserFromFields(fields)
}

// All enumerates every student record via SCAN over user:* keys. Iteration
// order is store-defined and not semantically significant.
func (r *UserRepositoryImpl) All(ctx context.Context) ([]*models.User, error) {
	var users []*models.User

	iter := r.rc.Scan(ctx, 0, utils.UserKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		fields, err := r.rc.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read user record %s: %w", iter.Val(), err)
		}
		user, err := models.UserFromFields(fields)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, user)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan user records: %w", err)
	}

	return users, nil
}
