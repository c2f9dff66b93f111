// Package seed loads user fixtures from YAML and creates them through the
// user service, so fixtures pass the same checks as any other caller.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
)

// File is the top-level document of a fixture file.
type File struct {
	Users []Entry `yaml:"users"`
}

// Entry is one fixture. ID and Name are kept loose so malformed fixtures
// reach the service and fail there with the usual domain errors.
type Entry struct {
	ID      any  `yaml:"id"`
	Name    any  `yaml:"name"`
	Deleted bool `yaml:"deleted"`
}

// Load reads and parses a fixture file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture YAML.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return f.Users, nil
}

// Apply creates each entry in order and soft-deletes those marked deleted.
// It stops at the first failure.
func Apply(ctx context.Context, svc ports.UserService, entries []Entry) error {
	for i, e := range entries {
		id := domain.Undefined()
		if e.ID != nil {
			id = domain.ValueOf(e.ID)
		}
		user := domain.ValueOf(map[string]any{domain.FieldName: e.Name})

		if _, err := svc.Create(ctx, id, user); err != nil {
			return fmt.Errorf("seed entry %d: %w", i, err)
		}
		if e.Deleted {
			if _, err := svc.Delete(ctx, id, false); err != nil {
				return fmt.Errorf("seed entry %d: %w", i, err)
			}
		}
	}
	return nil
}
