// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/config"
	"github.com/tomtom215/careerpath/internal/llm"
	"github.com/tomtom215/careerpath/internal/recommend"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
)

// session is a loaded engine plus the resources it holds.
type session struct {
	engine *recommend.Engine
	collab *llm.Collaborators
}

func (s *session) Close() error {
	return s.collab.Close()
}

// loadConfig reads the shared configuration and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.catalogPath != "" {
		cfg.Catalog.Path = opts.catalogPath
	}
	if opts.modelPath != "" {
		cfg.Model.Path = opts.modelPath
	}
	return cfg, nil
}

func newLogger(opts *rootOptions, stderr io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		Level(level).With().Timestamp().Logger()
}

// openSession builds an engine the way the server does. An unusable model is
// reported on stderr and the similarity baseline is used instead.
func openSession(opts *rootOptions, stderr io.Writer) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logger := newLogger(opts, stderr)

	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	engine, err := recommend.NewEngine(store, &cfg.Recommend, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Model.Path != "" {
		model, err := algorithms.LoadLogisticModel(cfg.Model.Path)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("model not loaded, using similarity baseline")
		case model.Dimension() != store.Schema().Len():
			logger.Warn().Int("model_dimension", model.Dimension()).Msg("model does not match catalog, using similarity baseline")
		default:
			engine.SetLearnedScorer(algorithms.NewLearnedScorer(model, store.Schema().Len()))
		}
	}

	s := &session{engine: engine}
	if !opts.noLLM {
		s.collab, err = llm.New(&cfg.LLM, logger)
		if err != nil {
			return nil, err
		}
		if s.collab != nil {
			s.collab.Attach(engine)
		}
	}
	return s, nil
}

// readProfile decodes a profile from path, or from stdin when path is "-".
func readProfile(path string, stdin io.Reader) (*recommend.UserProfile, error) {
	var (
		data []byte
		err  error
	)
	if strings.TrimSpace(path) == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return recommend.DecodeProfile(data)
}

// vectorFile is the subset of `features` output read back by --vector.
type vectorFile struct {
	Dimensions []struct {
		Group string `json:"group"`
		Name  string `json:"name"`
	} `json:"dimensions"`
	Values []float64 `json:"values"`
}

// readVector decodes a vector printed by the features command, from path or
// from stdin when path is "-". Listed dimensions must match schema.
func readVector(path string, stdin io.Reader, schema *catalog.DimensionSchema) (*recommend.FeatureVector, error) {
	var (
		data []byte
		err  error
	)
	if strings.TrimSpace(path) == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	}
	if err != nil {
		return nil, fmt.Errorf("read vector: %w", err)
	}

	var vf vectorFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("decode vector: %w", err)
	}
	if len(vf.Dimensions) > 0 {
		want := schema.Dimensions()
		if len(vf.Dimensions) != len(want) {
			return nil, fmt.Errorf("vector has %d dimensions, catalog has %d", len(vf.Dimensions), len(want))
		}
		for i, d := range vf.Dimensions {
			if d.Group != want[i].Group.String() || d.Name != want[i].Name {
				return nil, fmt.Errorf("vector dimension %d is %s/%s, catalog has %s/%s",
					i, d.Group, d.Name, want[i].Group, want[i].Name)
			}
		}
	}
	return recommend.NewFeatureVector(schema, vf.Values)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
