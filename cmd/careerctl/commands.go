// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/models"
	"github.com/tomtom215/careerpath/internal/recommend"
)

func mustMarkRequired(cmd *cobra.Command, name string) {
	if err := cmd.MarkFlagRequired(name); err != nil {
		panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
	}
}

func newRankCmd(opts *rootOptions) *cobra.Command {
	var (
		profilePath   string
		topN          int
		alternativesN int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank occupations for a profile",
		Long:  "Ranks catalog occupations against a profile JSON file and prints primary and alternative recommendations with explanations.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }() //nolint:errcheck // process exits next

			rankOpts := recommend.Options{TopN: topN}
			if cmd.Flags().Changed("alternatives-n") {
				rankOpts.AlternativesN = recommend.Count(alternativesN)
			}
			result, err := s.engine.Recommend(cmd.Context(), profile, rankOpts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the profile JSON, or - for stdin (required)")
	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "Number of primary recommendations (0 uses the configured default)")
	cmd.Flags().IntVarP(&alternativesN, "alternatives-n", "a", 0, "Number of alternatives (unset uses the configured default, 0 disables them)")
	mustMarkRequired(cmd, "profile")
	return cmd
}

func newExplainCmd(opts *rootOptions) *cobra.Command {
	var (
		profilePath  string
		vectorPath   string
		occupationID string
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain one occupation for a profile or a prebuilt vector",
		Long:  "Explains one occupation for a profile JSON, or for a vector previously printed by the features command (--vector).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }() //nolint:errcheck // process exits next

			var candidate *recommend.Candidate
			if vectorPath != "" {
				fv, err := readVector(vectorPath, cmd.InOrStdin(), s.engine.Store().Schema())
				if err != nil {
					return err
				}
				candidate, err = s.engine.ExplainVector(cmd.Context(), fv, occupationID)
				if err != nil {
					return err
				}
			} else {
				profile, err := readProfile(profilePath, cmd.InOrStdin())
				if err != nil {
					return err
				}
				candidate, err = s.engine.Explain(cmd.Context(), profile, occupationID)
				if err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), candidate)
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the profile JSON, or - for stdin")
	cmd.Flags().StringVar(&vectorPath, "vector", "", "Path to a features output JSON, or - for stdin")
	cmd.Flags().StringVarP(&occupationID, "occupation", "o", "", "Occupation id to explain (required)")
	cmd.MarkFlagsOneRequired("profile", "vector")
	cmd.MarkFlagsMutuallyExclusive("profile", "vector")
	mustMarkRequired(cmd, "occupation")
	return cmd
}

func newFeaturesCmd(opts *rootOptions) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print the encoded feature vector of a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }() //nolint:errcheck // process exits next

			fv, err := s.engine.BuildFeatures(cmd.Context(), profile)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), models.NewFeatureResponse(fv))
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the profile JSON, or - for stdin (required)")
	mustMarkRequired(cmd, "profile")
	return cmd
}

// catalogSummary is printed by validate-catalog.
type catalogSummary struct {
	Path        string         `json:"path"`
	Version     string         `json:"version"`
	Occupations int            `json:"occupations"`
	Dimensions  map[string]int `json:"dimensions"`
	Length      int            `json:"length"`
}

func newValidateCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog",
		Short: "Validate a catalog file and print its summary",
		Long:  "Loads the catalog through the same schema and consistency checks as the server. Exits non-zero when the catalog is rejected.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := catalog.Load(cfg.Catalog.Path)
			if err != nil {
				return err
			}

			schema := store.Schema()
			dims := make(map[string]int)
			for g := catalog.GroupSkill; g <= catalog.GroupConstraint; g++ {
				dims[g.String()] = schema.GroupLen(g)
			}
			return writeJSON(cmd.OutOrStdout(), catalogSummary{
				Path:        cfg.Catalog.Path,
				Version:     store.Version(),
				Occupations: store.Len(),
				Dimensions:  dims,
				Length:      schema.Len(),
			})
		},
	}
}
