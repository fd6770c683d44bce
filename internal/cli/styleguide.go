package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

// previewLines is how much of a style guide "style-guides" prints.
const previewLines = 3

func (c *CLI) newStyleGuidesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "style-guides",
		Aliases: []string{"sg"},
		Short:   "List style guides",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStyleGuides(cmd)
		},
	}

	cmd.AddCommand(c.newStyleGuideCreateCmd())
	cmd.AddCommand(c.newStyleGuideUpdateCmd())
	cmd.AddCommand(c.newStyleGuideDeleteCmd())

	return cmd
}

func (c *CLI) runStyleGuides(cmd *cobra.Command) error {
	var guides []models.StyleGuide
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		guides, err = client.GetStyleGuides(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(guides)
	}

	if len(guides) == 0 {
		c.println("No style guides.")
	}
	for _, g := range guides {
		c.printStyleGuide(g)
	}
	return nil
}

func (c *CLI) printStyleGuide(g models.StyleGuide) {
	status := "enabled"
	if !g.IsEnabled {
		status = "disabled"
	}
	c.printf("  [%s] %s\n", status, g.Title)

	lines := splitLines(g.Content)
	for i, line := range lines {
		if i == previewLines {
			c.println("    ...")
			break
		}
		c.printf("    %s\n", line)
	}
}

func (c *CLI) newStyleGuideCreateCmd() *cobra.Command {
	var disabled bool

	cmd := &cobra.Command{
		Use:   "create <title> <content>",
		Short: "Create a style guide",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var guide *models.StyleGuide
			err := c.withClient(func(client *nativ.Client) error {
				var err error
				guide, err = client.CreateStyleGuide(cmd.Context(), args[0], args[1], !disabled)
				return err
			})
			if err != nil {
				return err
			}
			return c.outputStyleGuide("Created", guide)
		},
	}

	cmd.Flags().BoolVar(&disabled, "disabled", false, "create the guide disabled")
	return cmd
}

func (c *CLI) newStyleGuideUpdateCmd() *cobra.Command {
	var (
		title   string
		content string
		enable  bool
		disable bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a style guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			var update nativ.StyleGuideUpdate
			if cmd.Flags().Changed("title") {
				update.Title = nativ.String(title)
			}
			if cmd.Flags().Changed("content") {
				update.Content = nativ.String(content)
			}
			if enable || disable {
				update.IsEnabled = nativ.Bool(enable)
			}

			var guide *models.StyleGuide
			err := c.withClient(func(client *nativ.Client) error {
				var err error
				guide, err = client.UpdateStyleGuide(cmd.Context(), args[0], update)
				return err
			})
			if err != nil {
				return err
			}
			return c.outputStyleGuide("Updated", guide)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the guide")
	cmd.Flags().BoolVar(&disable, "disable", false, "disable the guide")

	return cmd
}

func (c *CLI) outputStyleGuide(verb string, g *models.StyleGuide) error {
	if c.jsonOutput {
		return c.outputJSON(g)
	}
	c.printf("%s: %s\n", verb, g.ID)
	c.printStyleGuide(*g)
	return nil
}

func (c *CLI) newStyleGuideDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a style guide",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ok bool
			err := c.withClient(func(client *nativ.Client) error {
				var err error
				ok, err = client.DeleteStyleGuide(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.outputJSON(map[string]interface{}{"success": ok, "id": args[0]})
			}
			if !ok {
				c.errorf("Failed to delete %s\n", args[0])
				return errSilentFailure
			}
			c.printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func (c *CLI) newBrandVoiceCmd() *cobra.Command {
	var combined bool

	cmd := &cobra.Command{
		Use:     "brand-voice",
		Aliases: []string{"bv"},
		Short:   "Show the brand voice prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if combined {
				return c.runCombinedPrompt(cmd)
			}
			return c.runBrandVoice(cmd)
		},
	}

	cmd.Flags().BoolVar(&combined, "combined", false, "show the brand voice merged with enabled style guides")
	return cmd
}

func (c *CLI) runBrandVoice(cmd *cobra.Command) error {
	var bv *models.BrandVoice
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		bv, err = client.GetBrandVoice(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(bv)
	}

	if prompt := bv.EffectivePrompt(); prompt != "" {
		c.println(prompt)
	} else {
		c.println("No brand voice configured.")
	}
	return nil
}

func (c *CLI) runCombinedPrompt(cmd *cobra.Command) error {
	var prompt models.CombinedPrompt
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		prompt, err = client.GetCombinedPrompt(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if !c.jsonOutput {
		if text, ok := prompt["prompt"].(string); ok && text != "" {
			c.println(text)
			return nil
		}
	}
	return c.outputJSON(prompt)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n"), "\n")
}
