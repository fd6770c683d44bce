package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/models"
	"github.com/usenativ/nativ-go/pkg/nativ"
)

func (c *CLI) newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract text from an image (OCR)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := nativ.FileFromPath(args[0])
			if err != nil {
				return err
			}

			var result *models.OCRResult
			err = c.withClient(func(client *nativ.Client) error {
				var err error
				result, err = client.ExtractText(cmd.Context(), file)
				return err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.outputJSON(result)
			}
			c.println(result.ExtractedText)
			return nil
		},
	}
}

func (c *CLI) newInspectCmd() *cobra.Command {
	var countries string

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Cultural sensitivity check on an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := nativ.FileFromPath(args[0])
			if err != nil {
				return err
			}
			var list []string
			if countries != "" {
				list = strings.Split(countries, ",")
			}

			var result *models.CulturalInspection
			err = c.withClient(func(client *nativ.Client) error {
				var err error
				result, err = client.InspectImage(cmd.Context(), file, list...)
				return err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.outputJSON(result)
			}
			c.printf("Verdict: %s\n", result.Verdict)
			if len(result.AffectedCountries) > 0 {
				c.println()
				for _, ac := range result.AffectedCountries {
					c.printf("  %s: %s\n", ac.Country, ac.Issue)
					c.printf("    Suggestion: %s\n", ac.Suggestion)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&countries, "countries", "", "comma-separated country list to check")
	return cmd
}

func (c *CLI) newCulturalizeCmd() *cobra.Command {
	var (
		params = codec.NewImageCulturalize("", "")
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "culturalize <file> <text>",
		Short: "Generate localized text images from a reference image",
		Long: `Generate images that render text in the style of a reference image.

Examples:
  nativ culturalize banner.png "Hola mundo" --lang es
  nativ culturalize banner.png "Bonjour" --lang fr --num-images 3 --out ./out`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := nativ.FileFromPath(args[0])
			if err != nil {
				return err
			}
			params.Text = args[1]

			var result *models.ImageResult
			err = c.withClient(func(client *nativ.Client) error {
				var err error
				result, err = client.CulturalizeImage(cmd.Context(), file, params)
				return err
			})
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.outputJSON(result)
			}
			return c.writeImages(result, outDir, params.OutputFormat)
		},
	}

	cmd.Flags().StringVar(&params.LanguageCode, "lang", "", "target language code (e.g. es)")
	cmd.Flags().StringVar(&params.OutputFormat, "format", models.FormatPNG, "output format (png, jpeg, webp)")
	cmd.Flags().StringVar(&params.Model, "model", models.ModelGPT, "generation model (gpt, gemini)")
	cmd.Flags().IntVar(&params.NumImages, "num-images", 1, "number of images (1-5)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for the generated images")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func (c *CLI) writeImages(result *models.ImageResult, dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, img := range result.Images {
		data, err := img.Decode()
		if err != nil {
			return fmt.Errorf("image %d: invalid base64 payload: %w", i+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("nativ-%d.%s", i+1, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		c.println(path)
	}
	c.printf("Cost: %d\n", result.Metadata.Cost)
	return nil
}
