package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRedisKey(t *testing.T) {
	assert.Equal(t, "user:1", UserRedisKey(1))
	assert.Equal(t, "user:42", UserRedisKey(42))

	u := &User{ID: 7, Name: "Ann", Email: "ann@example.com"}
	assert.Equal(t, "user:7", u.RedisKey())
}

func TestUserFieldsRoundTrip(t *testing.T) {
	u := &User{ID: 42, Name: "Ann Example", Email: "ann@example.com"}

	fields := u.Fields()
	assert.Equal(t, "42", fields["id"])
	assert.Equal(t, "Ann Example", fields["name"])
	assert.Equal(t, "ann@example.com", fields["email"])

	stored := make(map[string]string, len(fields))
	for k, v := range fields {
		stored[k] = v.(string)
	}

	restored, err := UserFromFields(stored)
	require.NoError(t, err)
	assert.Equal(t, u, restored)
}

func TestUserFromFields_MissingRecord(t *testing.T) {
	u, err := UserFromFields(nil)
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = UserFromFields(map[string]string{})
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserFromFields_MalformedID(t *testing.T) {
	_, err := UserFromFields(map[string]string{
		"id":    "not-a-number",
		"name":  "Ann",
		"email": "ann@example.com",
	})
	assert.Error(t, err)
}

func TestAdminFieldsRoundTrip(t *testing.T) {
	account := &AdminAccount{Username: "admin", PasswordHash: "$2a$12$abcdef"}

	fields := account.Fields()
	assert.Equal(t, "admin", fields["username"])
	assert.Equal(t, "$2a$12$abcdef", fields["password"])

	stored := make(map[string]string, len(fields))
	for k, v := range fields {
		stored[k] = v.(string)
	}

	restored := AdminFromFields(stored)
	assert.Equal(t, account, restored)

	assert.Nil(t, AdminFromFields(map[string]string{}))
}
