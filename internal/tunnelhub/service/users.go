package service

import "github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"

// UserDirectory is the fixed set of accounts configured at startup.
type UserDirectory struct {
	users []domain.UserConfig
	byID  map[string]int
}

// NewUserDirectory indexes users by id, preserving their order.
func NewUserDirectory(users []domain.UserConfig) *UserDirectory {
	d := &UserDirectory{
		users: append([]domain.UserConfig(nil), users...),
		byID:  make(map[string]int, len(users)),
	}
	for i, u := range d.users {
		d.byID[u.ID] = i
	}
	return d
}

// All returns every user in configured order.
func (d *UserDirectory) All() []domain.UserConfig {
	return d.users
}

// Get returns the user with the given id.
func (d *UserDirectory) Get(id string) (domain.UserConfig, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.UserConfig{}, false
	}
	return d.users[i], true
}

// Redacted returns every user with API tokens masked.
func (d *UserDirectory) Redacted() []domain.UserConfig {
	out := make([]domain.UserConfig, len(d.users))
	for i, u := range d.users {
		out[i] = u.Redacted()
	}
	return out
}
