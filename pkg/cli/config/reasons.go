package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/hita/aedip-telemedicina/pkg/domain/policy"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

// ReasonConfig overrides the built-in change-reason catalog per
// (role, target status) pair
type ReasonConfig struct {
	Reasons []ReasonSet `toml:"reason"`
}

// ReasonSet is one catalog entry
type ReasonSet struct {
	Role    string   `toml:"role"`
	Status  string   `toml:"status"`
	Options []string `toml:"options"`
}

// Validate checks if the ReasonSet is valid
func (r *ReasonSet) Validate() error {
	role, err := types.ParseRole(r.Role)
	if err != nil {
		return goerr.Wrap(err, "invalid reason role")
	}
	status, err := types.ParseCaseStatus(r.Status)
	if err != nil {
		return goerr.Wrap(err, "invalid reason status")
	}
	if !policy.ReasonRequired(role, status) {
		return goerr.New("status does not take a change reason",
			goerr.V("role", r.Role),
			goerr.V("status", r.Status))
	}
	if len(r.Options) == 0 {
		return goerr.New("reason options are required",
			goerr.V("role", r.Role),
			goerr.V("status", r.Status))
	}
	for _, opt := range r.Options {
		if opt == "" {
			return goerr.New("empty reason option",
				goerr.V("role", r.Role),
				goerr.V("status", r.Status))
		}
	}
	return nil
}

// Validate checks if the ReasonConfig is valid
func (c *ReasonConfig) Validate() error {
	type key struct {
		role   string
		status string
	}
	seen := make(map[key]bool)
	for _, set := range c.Reasons {
		if err := set.Validate(); err != nil {
			return goerr.Wrap(err, "invalid reason set")
		}
		k := key{role: set.Role, status: set.Status}
		if seen[k] {
			return goerr.New("duplicate reason set",
				goerr.V("role", set.Role),
				goerr.V("status", set.Status))
		}
		seen[k] = true
	}
	return nil
}

// ToCatalog applies the overrides on top of the built-in catalog
func (c *ReasonConfig) ToCatalog() policy.Catalog {
	catalog := policy.DefaultCatalog()
	for _, set := range c.Reasons {
		role := types.Role(set.Role)
		status := types.CaseStatus(set.Status)
		catalog.Set(role, status, set.Options)
	}
	return catalog
}

// LoadReasonConfig loads a reason catalog override from a TOML file
func LoadReasonConfig(path string) (*ReasonConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read reason config", goerr.V("path", path))
	}

	var config ReasonConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML reason config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "reason config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
