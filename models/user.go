// Package models contains the domain entities persisted in the key-value store
package models

import (
	"fmt"
	"strconv"

	"github.com/enrolld/enrolld/utils"
)

// User represents a registered student. Records are append-only: once created
// they are never mutated or deleted.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"` // normalized: lowercased, trimmed
}

// RedisKey returns the hash key holding this user's record (user:<id>)
func (u *User) RedisKey() string {
	return UserRedisKey(u.ID)
}

// UserRedisKey builds the per-user hash key for the given id
func UserRedisKey(id uint64) string {
	return fmt.Sprintf("%s%d", utils.UserKeyPrefix, id)
}

// Fields converts the user to the field map stored in its Redis hash
func (u *User) Fields() map[string]any {
	return map[string]any{
		"id":    strconv.FormatUint(u.ID, 10),
		"name":  u.Name,
		"email": u.Email,
	}
}

// UserFromFields reconstructs a User from the field map read back from Redis.
// An empty map means the record does not exist.
func UserFromFields(fields map[string]string) (*User, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	id, err := strconv.ParseUint(fields["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed user record: bad id %q: %w", fields["id"], err)
	}

	return &User{
		ID:    id,
		Name:  fields["name"],
		Email: fields["email"],
	}, nil
}
