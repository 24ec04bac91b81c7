package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ats-backend/internal/analyses"
	"ats-backend/internal/bootstrap"
	"ats-backend/internal/engine"
	"ats-backend/internal/shared/config"
	"ats-backend/internal/suggestions"
)

type analyzeOutput struct {
	File        string                   `json:"file"`
	WordCount   int                      `json:"wordCount"`
	Analysis    engine.AnalysisResult    `json:"analysis"`
	Suggestions []suggestions.Suggestion `json:"suggestions,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	var (
		withSuggestions bool
		outFile         string
	)
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Score a PDF, DOCX or plain-text résumé",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliConfig(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, err := buildService(ctx, cfg, withSuggestions)
			if err != nil {
				return err
			}

			parsed, err := svc.ParseFile(ctx, data, "", filepath.Base(args[0]))
			if err != nil {
				return fmt.Errorf("failed to read résumé: %w", err)
			}
			result, err := svc.Analyze(ctx, parsed.Text)
			if err != nil {
				return fmt.Errorf("failed to analyze résumé: %w", err)
			}
			out := analyzeOutput{File: parsed.FileName, WordCount: parsed.WordCount, Analysis: result}
			if withSuggestions {
				if out.Suggestions, err = svc.Suggest(ctx, parsed.Text); err != nil {
					return err
				}
			}

			jsonBytes, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if outFile != "" {
				return os.WriteFile(outFile, append(jsonBytes, '\n'), 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
			return err
		},
	}
	cmd.Flags().BoolVar(&withSuggestions, "suggest", false, "Also request rewrite suggestions from the configured LLM provider")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSON to this file instead of stdout")
	return cmd
}

func buildService(ctx context.Context, cfg config.Config, withSuggestions bool) (*analyses.Service, error) {
	tax, err := bootstrap.BuildTaxonomy(cfg)
	if err != nil {
		return nil, err
	}
	svc := &analyses.Service{Engine: engine.New(tax), MaxChars: cfg.AnalyzeMaxChars}
	if withSuggestions {
		gen, err := bootstrap.BuildGenerator(ctx, cfg)
		if err != nil {
			return nil, err
		}
		svc.Suggestions = suggestions.NewService(gen, cfg.SuggestionsMaxChars)
	}
	return svc, nil
}

func cliConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	path, err := cmd.Flags().GetString("taxonomy")
	if err != nil {
		return cfg, err
	}
	if path != "" {
		cfg.TaxonomyFile = path
	}
	return cfg, nil
}
