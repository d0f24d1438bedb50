package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hita/aedip-telemedicina/pkg/cli/config"
	"github.com/hita/aedip-telemedicina/pkg/domain/types"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reasons.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadReasonConfig(t *testing.T) {
	t.Run("valid config overrides the catalog", func(t *testing.T) {
		path := writeTOML(t, `
[[reason]]
role = "EXPERT"
status = "RESOLVED"
options = ["Motivo A", "Motivo B"]

[[reason]]
role = "CLINICIAN"
status = "CANCELLED"
options = ["Motivo C"]
`)

		cfg, err := config.LoadReasonConfig(path)
		gt.NoError(t, err).Required()
		gt.Array(t, cfg.Reasons).Length(2)

		catalog := cfg.ToCatalog()
		gt.Array(t, catalog.Reasons(types.RoleExpert, types.CaseStatusResolved)).Length(2)
		gt.Value(t, catalog.Reasons(types.RoleClinician, types.CaseStatusCancelled)[0]).Equal("Motivo C")

		// Unmentioned pairs keep the built-in entries
		gt.Number(t, len(catalog.Reasons(types.RoleExpert, types.CaseStatusInReview))).GreaterOrEqual(1)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		path := writeTOML(t, `
[[reason]]
role = "NURSE"
status = "RESOLVED"
options = ["x"]
`)
		_, err := config.LoadReasonConfig(path)
		gt.Error(t, err)
	})

	t.Run("status without reason requirement is rejected", func(t *testing.T) {
		path := writeTOML(t, `
[[reason]]
role = "EXPERT"
status = "NEW"
options = ["x"]
`)
		_, err := config.LoadReasonConfig(path)
		gt.Error(t, err)
	})

	t.Run("empty options are rejected", func(t *testing.T) {
		path := writeTOML(t, `
[[reason]]
role = "EXPERT"
status = "RESOLVED"
options = []
`)
		_, err := config.LoadReasonConfig(path)
		gt.Error(t, err)
	})

	t.Run("duplicate pairs are rejected", func(t *testing.T) {
		path := writeTOML(t, `
[[reason]]
role = "EXPERT"
status = "RESOLVED"
options = ["a"]

[[reason]]
role = "EXPERT"
status = "RESOLVED"
options = ["b"]
`)
		_, err := config.LoadReasonConfig(path)
		gt.Error(t, err)
	})

	t.Run("malformed TOML is rejected", func(t *testing.T) {
		path := writeTOML(t, `[[reason]`)
		_, err := config.LoadReasonConfig(path)
		gt.Error(t, err)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		_, err := config.LoadReasonConfig(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
	})
}
