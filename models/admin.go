package models

// AdminAccount is the singleton administrator credential record. It is created
// once at process start if absent and never deleted.
type AdminAccount struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Fields converts the account to the field map stored in its Redis hash
func (a *AdminAccount) Fields() map[string]any {
	return map[string]any{
		"username": a.Username,
		"password": a.PasswordHash,
	}
}

// AdminFromFields reconstructs an AdminAccount from the field map read back
// from Redis. An empty map means no account has been seeded yet.
func AdminFromFields(fields map[string]string) *AdminAccount {
	if len(fields) == 0 {
		return nil
	}
	return &AdminAccount{
		Username:     fields["username"],
		PasswordHash: fields["password"],
	}
}
