package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

func (c *CLI) newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"lang"},
		Short:   "List configured languages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLanguages(cmd)
		},
	}

	cmd.AddCommand(c.newLanguagesFormalityCmd())
	cmd.AddCommand(c.newLanguagesStyleCmd())

	return cmd
}

func (c *CLI) runLanguages(cmd *cobra.Command) error {
	var langs []models.Language
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		langs, err = client.GetLanguages(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(langs)
	}

	for _, lang := range langs {
		parts := []string{fmt.Sprintf("%s (%s)", lang.Language, lang.LanguageCode)}
		if lang.Formality != nil && *lang.Formality != "" {
			parts = append(parts, "formality="+*lang.Formality)
		}
		c.println(strings.Join(parts, "  "))
	}
	return nil
}

func (c *CLI) newLanguagesFormalityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formality <language-id> <level>",
		Short: "Set the formality of a language",
		Long: `Set the default formality of a workspace language.

Levels: ` + strings.Join(models.Formalities, ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLanguageID(args[0])
			if err != nil {
				return err
			}
			if !slices.Contains(models.Formalities, args[1]) {
				return fmt.Errorf("invalid formality %q: choose from %s", args[1], strings.Join(models.Formalities, ", "))
			}
			return c.runLanguageUpdate(cmd, id, func(client *nativ.Client) (bool, error) {
				return client.UpdateLanguageFormality(cmd.Context(), id, args[1])
			})
		},
	}
}

func (c *CLI) newLanguagesStyleCmd() *cobra.Command {
	var clearStyle bool

	cmd := &cobra.Command{
		Use:   "style <language-id> [style]",
		Short: "Set or clear the custom style of a language",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLanguageID(args[0])
			if err != nil {
				return err
			}
			var style *string
			switch {
			case clearStyle:
			case len(args) == 2:
				style = nativ.String(args[1])
			default:
				return fmt.Errorf("provide a style or pass --clear")
			}
			return c.runLanguageUpdate(cmd, id, func(client *nativ.Client) (bool, error) {
				return client.UpdateLanguageCustomStyle(cmd.Context(), id, style)
			})
		},
	}

	cmd.Flags().BoolVar(&clearStyle, "clear", false, "remove the custom style")
	return cmd
}

func (c *CLI) runLanguageUpdate(cmd *cobra.Command, id int, update func(*nativ.Client) (bool, error)) error {
	var ok bool
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		ok, err = update(client)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{"success": ok, "language_id": id})
	}
	if !ok {
		c.errorf("Failed to update language %d\n", id)
		return errSilentFailure
	}
	c.printf("Updated language %d\n", id)
	return nil
}

func parseLanguageID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid language id %q: must be an integer", s)
	}
	return id, nil
}
