// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

// Package main provides careerctl, an offline command line interface to the
// career recommendation engine. It reads the same configuration as the server
// (config.yaml, .env and environment) and runs the engine in process.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	catalogPath string
	modelPath   string
	noLLM       bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "careerctl",
		Short: "Career recommendation ranking and explainability",
		Long: "careerctl ranks catalog occupations against a user profile, explains single " +
			"occupations and validates catalogs without running the HTTP server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.catalogPath, "catalog", "c", "", "Path to the occupation catalog JSON (overrides CATALOG_PATH)")
	flags.StringVarP(&opts.modelPath, "model", "m", "", "Path to a logistic model JSON (overrides MODEL_PATH)")
	flags.BoolVar(&opts.noLLM, "no-llm", false, "Disable language model collaborators even when LLM_API_KEY is set")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	cmd.AddCommand(
		newRankCmd(opts),
		newExplainCmd(opts),
		newFeaturesCmd(opts),
		newValidateCatalogCmd(opts),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
