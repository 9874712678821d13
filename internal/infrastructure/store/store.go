// Package store provides the durable key/value session stores. Both
// implementations share one key layout and JSON codec so a gateway can move
// between them without losing an existing session. Per the session-store
// contract, no operation ever surfaces a storage fault to the caller:
// failures are logged and read back as "absent".
package store

import (
	"encoding/json"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
)

const (
	keyToken      = "session:token"
	keyUser       = "session:user"
	keyRememberMe = "session:remember_me"
	keyLastRoute  = "session:last_route"
)

func encodeUser(u *domain.User) (string, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeUser(raw string) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
