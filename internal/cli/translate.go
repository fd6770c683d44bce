package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/internal/langdetect"
	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

// langFlags are the language selectors shared by translate and batch.
type langFlags struct {
	to        string
	toCode    string
	from      string
	fromCode  string
	context   string
	formality string
}

func (f *langFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "target language (e.g. French, German)")
	cmd.Flags().StringVar(&f.toCode, "to-code", "", "target language ISO code (e.g. fr)")
	cmd.Flags().StringVar(&f.from, "from", "", "source language (default: English)")
	cmd.Flags().StringVar(&f.fromCode, "from-code", "", "source language code (default: en)")
	cmd.Flags().StringVar(&f.context, "context", "", "context hint for the translation")
	cmd.Flags().StringVar(&f.formality, "formality", "",
		"formality level ("+strings.Join(models.Formalities, ", ")+")")
	_ = cmd.MarkFlagRequired("to")
}

func (f *langFlags) validate() error {
	if f.formality != "" && !slices.Contains(models.Formalities, f.formality) {
		return fmt.Errorf("invalid formality %q: choose from %s", f.formality, strings.Join(models.Formalities, ", "))
	}
	return nil
}

func (f *langFlags) options() []nativ.TranslateOption {
	from, fromCode := f.from, f.fromCode
	if from == "" {
		from = codec.DefaultSourceLanguage
	}
	if fromCode == "" {
		fromCode = codec.DefaultSourceLanguageCode
	}

	opts := []nativ.TranslateOption{nativ.WithSourceLanguage(from, fromCode)}
	if f.toCode != "" {
		opts = append(opts, nativ.WithTargetLanguageCode(f.toCode))
	}
	if f.context != "" {
		opts = append(opts, nativ.WithContext(f.context))
	}
	if f.formality != "" {
		opts = append(opts, nativ.WithFormality(f.formality))
	}
	return opts
}

func (c *CLI) newTranslateCmd() *cobra.Command {
	var (
		lang          langFlags
		glossary      string
		maxChars      int
		backtranslate bool
		detectSource  bool
	)

	cmd := &cobra.Command{
		Use:     "translate [text|-]",
		Aliases: []string{"t"},
		Short:   "Translate text",
		Long: `Translate text with cultural adaptation.

The text is read from standard input when omitted or given as "-".
Translation memory, brand voice and style guides apply automatically.

Examples:
  nativ translate "Hello world" --to French
  echo "Hello" | nativ translate --to French --formality formal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := lang.validate(); err != nil {
				return err
			}
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			if text == "" || text == "-" {
				stdin, err := c.readStdin()
				if err != nil {
					return err
				}
				if stdin == "" {
					return fmt.Errorf("provide text as argument or pipe via stdin")
				}
				text = stdin
			}

			opts := lang.options()
			if detectSource && lang.from == "" && lang.fromCode == "" {
				if detected, ok := langdetect.Detect(text); ok {
					c.logger.Debug().Str("language", detected.Name).Str("code", detected.Code).Msg("detected source language")
					opts = append(opts, nativ.WithSourceLanguage(detected.Name, detected.Code))
				}
			}
			if glossary != "" {
				opts = append(opts, nativ.WithGlossary(glossary))
			}
			if cmd.Flags().Changed("max-chars") {
				opts = append(opts, nativ.WithMaxCharacters(maxChars))
			}
			if backtranslate {
				opts = append(opts, nativ.WithBacktranslation(true))
			}
			return c.runTranslate(cmd, text, lang.to, opts)
		},
	}

	lang.register(cmd)
	cmd.Flags().StringVar(&glossary, "glossary", "", "inline glossary CSV (term,translation)")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "character limit")
	cmd.Flags().BoolVar(&backtranslate, "backtranslate", false, "include back-translation")
	cmd.Flags().BoolVar(&detectSource, "detect-source", false, "detect the source language when --from is not given")

	return cmd
}

func (c *CLI) runTranslate(cmd *cobra.Command, text, to string, opts []nativ.TranslateOption) error {
	var result *models.Translation
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		result, err = client.Translate(cmd.Context(), text, to, opts...)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(result)
	}

	c.println(result.TranslatedText)
	if result.Backtranslation != nil && *result.Backtranslation != "" {
		c.printf("\nBack-translation: %s\n", *result.Backtranslation)
	}
	if result.Rationale != nil && *result.Rationale != "" {
		c.printf("\nRationale: %s\n", *result.Rationale)
	}
	if result.TMMatch != nil && result.TMMatch.Score > 0 {
		c.printf("\nTM match: %.0f%% (%s)\n", result.TMMatch.Score, result.TMMatch.MatchType)
	}
	return nil
}

func (c *CLI) newBatchCmd() *cobra.Command {
	var lang langFlags

	cmd := &cobra.Command{
		Use:     "batch [texts...]",
		Aliases: []string{"b"},
		Short:   "Translate multiple texts",
		Long: `Translate several texts, one request each, in order.

Texts are read from standard input, one per line, when none are given.

Examples:
  nativ batch "Sign up" "Log in" --to German
  cat strings.txt | nativ batch --to Japanese`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := lang.validate(); err != nil {
				return err
			}
			texts := args
			if len(texts) == 0 {
				stdin, err := c.readStdin()
				if err != nil {
					return err
				}
				if stdin != "" {
					texts = strings.Split(strings.ReplaceAll(stdin, "\r\n", "\n"), "\n")
				}
			}
			if len(texts) == 0 {
				return fmt.Errorf("provide texts as arguments or pipe via stdin (one per line)")
			}
			return c.runBatch(cmd, texts, lang.to, lang.options())
		},
	}

	lang.register(cmd)
	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, texts []string, to string, opts []nativ.TranslateOption) error {
	var results []*models.Translation
	err := c.withClient(func(client *nativ.Client) error {
		var err error
		results, err = client.TranslateBatch(cmd.Context(), texts, to, opts...)
		return err
	})
	if err != nil {
		return err
	}

	if c.jsonOutput {
		return c.outputJSON(results)
	}

	for i, result := range results {
		c.printf("%s  ->  %s\n", texts[i], result.TranslatedText)
	}
	return nil
}

func (c *CLI) newFeedbackCmd() *cobra.Command {
	var (
		source   string
		result   string
		language string
		comment  string
		approve  bool
		reject   bool
	)

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Send feedback about a translation",
		Long: `Send feedback about a translation so future results improve.

Example:
  nativ feedback --source "Sign up" --result "Registrieren" --language German --approve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve && reject {
				return fmt.Errorf("--approve and --reject are mutually exclusive")
			}
			var fb nativ.Feedback
			if source != "" {
				fb.Source = nativ.String(source)
			}
			if result != "" {
				fb.Result = nativ.String(result)
			}
			if language != "" {
				fb.Language = nativ.String(language)
			}
			if comment != "" {
				fb.Feedback = nativ.String(comment)
			}
			if approve || reject {
				fb.Approved = nativ.Bool(approve)
			}

			var ack models.FeedbackResult
			err := c.withClient(func(client *nativ.Client) error {
				var err error
				ack, err = client.SubmitFeedback(cmd.Context(), fb)
				return err
			})
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.outputJSON(ack)
			}
			c.println("Feedback sent.")
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source text")
	cmd.Flags().StringVar(&result, "result", "", "translated text")
	cmd.Flags().StringVar(&language, "language", "", "target language")
	cmd.Flags().StringVar(&comment, "comment", "", "free-form feedback")
	cmd.Flags().BoolVar(&approve, "approve", false, "mark the translation as approved")
	cmd.Flags().BoolVar(&reject, "reject", false, "mark the translation as rejected")

	return cmd
}
