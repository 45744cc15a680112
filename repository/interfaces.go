// Package repository provides data access layer implementations and interfaces for the key-value store
package repository

import (
	"context"

	"github.com/enrolld/enrolld/models"
)

// UserRepository defines operations on the append-only student registry.
//
// Registration correctness under concurrency rests on two store primitives:
// NextID is an atomic counter increment, and ClaimEmail is an atomic
// set-if-absent on the email index. Two concurrent registrations for the same
// normalized email therefore never both succeed.
type UserRepository interface {
	// NextID atomically allocates the next student id
	NextID(ctx context.Context) (uint64, error)

	// EmailExists reports whether the normalized email is already indexed
	EmailExists(ctx context.Context, email string) (bool, error)

	// ClaimEmail atomically writes email -> id into the index if and only if
	// the email is not yet present. Returns false when another registration won.
	ClaimEmail(ctx context.Context, email string, id uint64) (bool, error)

	// Save writes the student record hash
	Save(ctx context.Context, user *models.User) error

	// ByID retrieves a student by id; (nil, nil) when absent
	ByID(ctx context.Context, id uint64) (*models.User, error)

	// All enumerates every student record (full scan, store-defined order)
	All(ctx context.Context) ([]*models.User, error)
}

// AdminRepository manages the singleton administrator credential record.
type AdminRepository interface {
	// Exists reports whether the singleton account has been seeded
	Exists(ctx context.Context) (bool, error)

	// Create writes the singleton account record. Callers check Exists first;
	// seeding is idempotent at startup.
	Create(ctx context.Context, account *models.AdminAccount) error

	// Get retrieves the singleton account; (nil, nil) when absent
	Get(ctx context.Context) (*models.AdminAccount, error)
}
