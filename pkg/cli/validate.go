package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/hita/aedip-telemedicina/pkg/cli/config"
	"github.com/hita/aedip-telemedicina/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var reasonsPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a reason catalog configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "reasons-config",
				Usage:       "Path to a TOML file overriding the change-reason catalog",
				Required:    true,
				Sources:     cli.EnvVars("AEDIP_REASONS_CONFIG"),
				Destination: &reasonsPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			reasonCfg, err := config.LoadReasonConfig(reasonsPath)
			if err != nil {
				return goerr.Wrap(err, "reason config is invalid")
			}

			logging.Default().Info("Reason config is valid",
				"path", reasonsPath,
				"entries", len(reasonCfg.Reasons))
			return nil
		},
	}
}
