package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aussiebroadwan/tunnelhub/internal/tunnelhub/domain"
	"github.com/aussiebroadwan/tunnelhub/pkg/relay"
	"gopkg.in/yaml.v3"
)

// LoadUsers reads the account list from file when set, otherwise from the
// inline value. Both JSON and YAML are accepted. Users without API URLs get
// the public relay API.
func LoadUsers(inline, file string) ([]domain.UserConfig, error) {
	raw := inline
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read users file: %w", err)
		}
		raw = string(data)
	}

	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	return ParseUsers([]byte(raw))
}

// ParseUsers decodes and validates a users document. JSON documents are
// valid YAML, so one decoder handles both.
func ParseUsers(data []byte) ([]domain.UserConfig, error) {
	var users []domain.UserConfig
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}

	seen := make(map[string]struct{}, len(users))
	var errs []error
	for i := range users {
		u := &users[i]
		u.ID = strings.TrimSpace(u.ID)
		if u.ID == "" {
			errs = append(errs, fmt.Errorf("user %d: id is required", i))
			continue
		}
		if _, dup := seen[u.ID]; dup {
			errs = append(errs, fmt.Errorf("user %q: duplicate id", u.ID))
			continue
		}
		seen[u.ID] = struct{}{}

		if u.Name == "" {
			u.Name = u.ID
		}
		if len(u.APIURLs) == 0 {
			u.APIURLs = []string{relay.DefaultAPIURL}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return users, nil
}
