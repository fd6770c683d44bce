package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/internal/config"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create CLI configuration",
	}

	cmd.AddCommand(c.newConfigShowCmd())
	cmd.AddCommand(c.newConfigInitCmd())

	return cmd
}

func (c *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long:  `Show the configuration after merging defaults, file, environment and flags. The API key is masked.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			redacted := c.cfg.Redacted()
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{
					"api_key":  redacted.APIKey,
					"base_url": redacted.BaseURL,
					"timeout":  redacted.Timeout.String(),
					"logging":  redacted.Logging,
				})
			}
			out, err := redacted.Marshal()
			if err != nil {
				return err
			}
			c.printf("%s", out)
			return nil
		},
	}
}

func (c *CLI) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write the resolved configuration to the config file so later runs
pick it up. Use --api-key to store a key. The file is created with
owner-only permissions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.yaml")
			}
			if err := c.cfg.WriteFile(path, force); err != nil {
				return err
			}
			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{"path": path})
			}
			c.printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
