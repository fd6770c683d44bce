package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

// defaultTMListLimit is the page size of "tm list". The API default is
// larger than a terminal wants.
const defaultTMListLimit = 20

func (c *CLI) newTMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tm",
		Short: "Translation memory commands",
		Long:  `Search, list, add and delete translation memory entries.`,
	}

	cmd.AddCommand(c.newTMSearchCmd())
	cmd.AddCommand(c.newTMListCmd())
	cmd.AddCommand(c.newTMAddCmd())
	cmd.AddCommand(c.newTMUpdateCmd())
	cmd.AddCommand(c.newTMDeleteCmd())
	cmd.AddCommand(c.newTMStatsCmd())

	return cmd
}

func (c *CLI) newTMSearchCmd() *cobra.Command {
	search := codec.NewTMSearch("")

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search the translation memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search.Query = args[0]
			return c.runTMSearch(cmd, search)
		},
	}

	cmd.Flags().StringVar(&search.SourceLanguageCode, "source-lang", codec.DefaultSourceLanguageCode, "source language code")
	cmd.Flags().StringVar(&search.TargetLanguageCode, "target-lang", "", "filter by target language code")
	cmd.Flags().Float64Var(&search.MinScore, "min-score", 0, "minimum match score (0-100)")
	cmd.Flags().IntVar(&search.Limit, "limit", codec.DefaultTMSearchLimit, "max results")

	return cmd
}

func (c *CLI) runTMSearch(cmd *cobra.Command, search nativ.TMSearch) error {
	var matches []models.TMSearchMatch
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		matches, err = client.SearchTM(cmd.Context(), search)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(matches)
	}

	if len(matches) == 0 {
		c.println("No matches found.")
	}
	for _, m := range matches {
		c.printf("  %.0f%%  %s  ->  %s\n", m.Score, m.SourceText, m.TargetText)
	}
	return nil
}

func (c *CLI) newTMListCmd() *cobra.Command {
	filter := nativ.TMListFilter{Limit: defaultTMListLimit}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List translation memory entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTMList(cmd, filter)
		},
	}

	cmd.Flags().StringVar(&filter.SourceLanguageCode, "source-lang", "", "filter by source language code")
	cmd.Flags().StringVar(&filter.TargetLanguageCode, "target-lang", "", "filter by target language code")
	cmd.Flags().StringVar(&filter.InformationSource, "information-source", "", "filter by provenance (e.g. manual)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "filter by text")
	cmd.Flags().BoolVar(&filter.EnabledOnly, "enabled-only", false, "only enabled entries")
	cmd.Flags().IntVar(&filter.Limit, "limit", defaultTMListLimit, "page size")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "page offset")

	return cmd
}

func (c *CLI) runTMList(cmd *cobra.Command, filter nativ.TMListFilter) error {
	var list *models.TMEntryList
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		list, err = client.ListTMEntries(cmd.Context(), filter)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(list)
	}

	c.printf("Showing %d of %d entries\n\n", len(list.Entries), list.Total)
	for _, e := range list.Entries {
		status := "on "
		if !e.Enabled {
			status = "off"
		}
		c.printf("  [%s] %s  %s  ->  %s  (%s->%s)\n",
			status, shortID(e.ID), e.SourceText, e.TargetText, e.SourceLanguageCode, e.TargetLanguageCode)
	}
	return nil
}

func (c *CLI) newTMAddCmd() *cobra.Command {
	var entry nativ.TMEntryInput

	cmd := &cobra.Command{
		Use:   "add <source> <target>",
		Short: "Add a translation memory entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.SourceText = args[0]
			entry.TargetText = args[1]
			return c.runTMAdd(cmd, entry)
		},
	}

	cmd.Flags().StringVar(&entry.SourceLanguageCode, "source-lang", "", "source language code")
	cmd.Flags().StringVar(&entry.TargetLanguageCode, "target-lang", "", "target language code")
	cmd.Flags().StringVar(&entry.Name, "name", "", "optional label for this entry")
	_ = cmd.MarkFlagRequired("source-lang")
	_ = cmd.MarkFlagRequired("target-lang")

	return cmd
}

func (c *CLI) runTMAdd(cmd *cobra.Command, input nativ.TMEntryInput) error {
	var entry *models.TMEntry
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		entry, err = client.AddTMEntry(cmd.Context(), input)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(entry)
	}

	c.printf("Added: %s  %s  ->  %s\n", entry.ID, entry.SourceText, entry.TargetText)
	return nil
}

func (c *CLI) newTMUpdateCmd() *cobra.Command {
	var (
		target  string
		enable  bool
		disable bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the target text or enabled state of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return fmt.Errorf("--enable and --disable are mutually exclusive")
			}
			var update nativ.TMEntryUpdate
			if cmd.Flags().Changed("target") {
				update.TargetText = nativ.String(target)
			}
			if enable || disable {
				update.Enabled = nativ.Bool(enable)
			}
			return c.runTMUpdate(cmd, args[0], update)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "new target text")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the entry")
	cmd.Flags().BoolVar(&disable, "disable", false, "disable the entry")

	return cmd
}

func (c *CLI) runTMUpdate(cmd *cobra.Command, id string, update nativ.TMEntryUpdate) error {
	var ok bool
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		ok, err = client.UpdateTMEntry(cmd.Context(), id, update)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(map[string]interface{}{"success": ok, "id": id})
	}
	if !ok {
		c.errorf("Failed to update %s\n", id)
		return errSilentFailure
	}
	c.printf("Updated %s\n", id)
	return nil
}

func (c *CLI) newTMDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a translation memory entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTMDelete(cmd, args[0])
		},
	}
}

func (c *CLI) runTMDelete(cmd *cobra.Command, id string) error {
	var ok bool
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		ok, err = client.DeleteTMEntry(cmd.Context(), id)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		if err := c.outputJSON(map[string]interface{}{"success": ok, "id": id}); err != nil {
			return err
		}
		if !ok {
			return errSilentFailure
		}
		return nil
	}
	if !ok {
		c.errorf("Failed to delete %s\n", id)
		return errSilentFailure
	}
	c.printf("Deleted %s\n", id)
	return nil
}

func (c *CLI) newTMStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Translation memory statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTMStats(cmd)
		},
	}
}

func (c *CLI) runTMStats(cmd *cobra.Command) error {
	var stats *models.TMStats
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		stats, err = client.GetTMStats(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(stats)
	}

	c.printf("Total:    %d\n", stats.Total)
	c.printf("Enabled:  %d\n", stats.Enabled)
	c.printf("Disabled: %d\n", stats.Disabled)
	if len(stats.BySource) > 0 {
		c.println("\nBy source:")
		for _, src := range sortedKeys(stats.BySource) {
			c.printf("  %s: %s\n", src, formatCounts(stats.BySource[src]))
		}
	}
	return nil
}

// shortID truncates an entry id for tabular output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatCounts(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for _, k := range sortedKeys(counts) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
