package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/pagemark/internal/cache"
	"github.com/meshintel/pagemark/internal/render"
	"github.com/meshintel/pagemark/internal/segment"
	"github.com/meshintel/pagemark/internal/source"
	"github.com/meshintel/pagemark/internal/transcribe"
	"github.com/meshintel/pagemark/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdf>",
	Short: "Convert a PDF document to markdown",
	Long: `Parse runs the full pipeline on one PDF: segment each page into regions,
render the annotated page and cropped region images, transcribe every page
with a vision language model, and assemble the results into output.md in
the output directory.

Transcriptions are cached in a SQLite database keyed by page image hash
and model, so re-running on an unchanged document costs no API calls.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		flags := cmd.Flags()

		outputDir, _ := flags.GetString("output-dir")
		if outputDir == "" {
			base := filepath.Base(pdfPath)
			outputDir = strings.TrimSuffix(base, filepath.Ext(base))
		}

		apiKey, _ := flags.GetString("api-key")
		keyEnv, _ := flags.GetString("api-key-env")
		apiKey = resolveAPIKey(apiKey, keyEnv)
		if apiKey == "" {
			return fmt.Errorf("no API key: pass --api-key, set $%s, or add a key file under .secrets/", keyEnv)
		}

		model, _ := flags.GetString("model")
		baseURL, _ := flags.GetString("base-url")
		workers, _ := flags.GetInt("workers")
		promptFile, _ := flags.GetString("prompt-file")
		noCache, _ := flags.GetBool("no-cache")
		verbose, _ := flags.GetBool("verbose")

		cfg := types.TranscriptionConfig{
			AIConfig: types.AIConfig{
				Model:   model,
				APIKey:  apiKey,
				BaseURL: baseURL,
			},
			Workers:    workers,
			PromptFile: promptFile,
			OutputDir:  outputDir,
			Verbose:    verbose,
		}
		if flags.Changed("temperature") {
			t, _ := flags.GetFloat64("temperature")
			cfg.Temperature = &t
		}
		if flags.Changed("max-tokens") {
			n, _ := flags.GetInt("max-tokens")
			cfg.MaxTokens = &n
		}

		prompts := transcribe.DefaultPrompts()
		if promptFile != "" {
			var err error
			prompts, err = transcribe.LoadPromptFile(promptFile)
			if err != nil {
				return err
			}
		}

		pages, err := renderDocument(pdfPath, outputDir)
		if err != nil {
			return err
		}

		var store *cache.Store
		if !noCache {
			store, err = cache.Open(outputDir)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		backend := &transcribe.OpenAIBackend{
			APIKey:      apiKey,
			BaseURL:     baseURL,
			Model:       model,
			Prompts:     prompts,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			MaxRetries:  cfg.MaxRetries,
		}

		_, err = transcribe.TranscribeDocument(cmd.Context(), backend, pages, cfg, store, os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "wrote %s\n", filepath.Join(outputDir, "output.md"))
		return nil
	},
}

// renderDocument segments and renders every page of the PDF, returning
// one PageRender per page in page order.
func renderDocument(pdfPath, outputDir string) ([]render.PageRender, error) {
	src, err := source.OpenPDF(pdfPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	renderer, err := render.Open(pdfPath, types.RenderConfig{OutputDir: outputDir})
	if err != nil {
		return nil, err
	}
	defer renderer.Close()

	segCfg := types.DefaultSegmentationConfig()

	pages := make([]render.PageRender, 0, src.NumPages())
	for n := 0; n < src.NumPages(); n++ {
		page, err := src.Page(n)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", n, err)
		}

		regions, err := segment.SegmentPage(page, segCfg)
		if err != nil {
			return nil, fmt.Errorf("segmenting page %d: %w", n, err)
		}

		rendered, err := renderer.RenderPage(page, regions)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", n, err)
		}
		pages = append(pages, rendered)

		fmt.Fprintf(os.Stderr, "rendered page %d (%d regions)\n", n, len(regions))
	}
	return pages, nil
}

// resolveAPIKey picks the API key: flag, then the named environment
// variable, then a key file under .secrets/.
func resolveAPIKey(flagValue, envName string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if v := secretDefault("openai-api-key", ""); v != "" {
		return v
	}
	return secretDefault("openrouter-api-key", "")
}

func init() {
	parseCmd.Flags().StringP("output-dir", "o", "", "output directory (default: PDF name without extension)")
	parseCmd.Flags().String("model", "gpt-4o", "vision model identifier")
	parseCmd.Flags().String("base-url", transcribe.DefaultBaseURL, "OpenAI-compatible API root")
	parseCmd.Flags().String("api-key", "", "API key (overrides environment and .secrets/)")
	parseCmd.Flags().String("api-key-env", "OPENAI_API_KEY", "environment variable holding the API key")
	parseCmd.Flags().String("prompt-file", "", "YAML file overriding the built-in prompts")
	parseCmd.Flags().Int("workers", 1, "concurrent page transcriptions")
	parseCmd.Flags().Float64("temperature", 0, "sampling temperature passed to the model")
	parseCmd.Flags().Int("max-tokens", 0, "response token cap passed to the model")
	parseCmd.Flags().Bool("no-cache", false, "bypass the transcription cache")
	parseCmd.Flags().BoolP("verbose", "v", false, "echo each page's transcription as it arrives")

	rootCmd.AddCommand(parseCmd)
}
