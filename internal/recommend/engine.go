// Careerpath - Career Recommendation Ranking and Explainability
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/careerpath/internal/catalog"
	"github.com/tomtom215/careerpath/internal/recommend/algorithms"
	"github.com/tomtom215/careerpath/internal/recommend/reranking"
)

// Collaborator names used in logs and metrics.
const (
	collabExpand   = "expand"
	collabGenerate = "generate"
	collabEnhance  = "enhance"
)

// Engine ranks catalog occupations against user profiles.
// The catalog and model are read-only after construction, so the engine is
// safe for concurrent use once its Set methods have been called.
type Engine struct {
	config *Config
	logger zerolog.Logger

	store      *catalog.Store
	builder    *FeatureBuilder
	explainer  *Explainer
	guardrail  *Guardrail
	generic    *reranking.KeywordMatcher
	supplement *supplementPolicy

	similarity *algorithms.SimilarityScorer
	learned    *algorithms.LearnedScorer

	// Optional collaborators
	expander  SkillExpander
	generator CareerGenerator
	enhancer  NarrativeEnhancer
	recorder  Recorder

	requestCount  atomic.Int64
	fallbackCount atomic.Int64
	supplemented  atomic.Int64
	rejectedCount atomic.Int64
	errorCount    atomic.Int64
}

// NewEngine creates a ranking engine over a loaded catalog. A catalog with
// fewer occupations than the configured minimum recommendation count is
// rejected with catalog.ErrInsufficientCatalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *catalog.Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if store == nil {
		return nil, fmt.Errorf("%w: no catalog loaded", catalog.ErrInsufficientCatalog)
	}
	if store.Len() < cfg.Guardrail.MinRecommendations {
		return nil, fmt.Errorf("%w: %d occupations, need at least %d",
			catalog.ErrInsufficientCatalog, store.Len(), cfg.Guardrail.MinRecommendations)
	}

	schema := store.Schema()
	return &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		store:      store,
		builder:    NewFeatureBuilder(schema, cfg.Matching),
		explainer:  NewExplainer(schema, cfg.Explain),
		guardrail:  NewGuardrail(cfg.Guardrail),
		generic:    reranking.NewKeywordMatcher(cfg.Ranking.GenericCategories),
		supplement: newSupplementPolicy(cfg.Supplement),
		similarity: algorithms.NewSimilarityScorer(),
		recorder:   nopRecorder{},
	}, nil
}

// SetLearnedScorer installs the pretrained scorer. A nil scorer leaves the
// engine on the similarity baseline.
func (e *Engine) SetLearnedScorer(s *algorithms.LearnedScorer) {
	e.learned = s
	if s.Available() {
		e.logger.Info().Str("scorer", s.Name()).Msg("registered learned scorer")
	}
}

// SetSkillExpander installs the optional skill expander.
func (e *Engine) SetSkillExpander(x SkillExpander) {
	e.expander = x
}

// SetCareerGenerator installs the optional supplemental career generator.
func (e *Engine) SetCareerGenerator(g CareerGenerator) {
	e.generator = g
}

// SetNarrativeEnhancer installs the optional narrative enhancer.
func (e *Engine) SetNarrativeEnhancer(n NarrativeEnhancer) {
	e.enhancer = n
}

// SetRecorder installs an instrumentation recorder.
func (e *Engine) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	e.recorder = r
}

// Store returns the catalog the engine ranks against.
func (e *Engine) Store() *catalog.Store {
	return e.store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// ScorerName reports the strategy requests will try first.
func (e *Engine) ScorerName() string {
	if e.learned.Available() {
		return algorithms.NameLearned
	}
	return algorithms.NameSimilarity
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:          e.requestCount.Load(),
		ScorerFallbacks:   e.fallbackCount.Load(),
		Supplemented:      e.supplemented.Load(),
		GuardrailRejected: e.rejectedCount.Load(),
		Errors:            e.errorCount.Load(),
	}
}

// BuildFeatures screens a profile and encodes it as a feature vector,
// applying skill expansion when an expander is configured.
func (e *Engine) BuildFeatures(ctx context.Context, p *UserProfile) (*FeatureVector, error) {
	if err := e.screen(p); err != nil {
		return nil, err
	}
	return e.builder.Build(p, e.expand(ctx, p, e.logger))
}

// Rank ranks the catalog against a prebuilt vector. No collaborators are
// consulted and no raw input is screened.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) Rank(ctx context.Context, fv *FeatureVector, opts Options) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	opts, err := e.prepareOptions(opts)
	if err != nil {
		return nil, err
	}
	if !e.aligned(fv) {
		return nil, &ValidationError{Field: "vector", Reason: "not aligned to the catalog dimension schema"}
	}

	logger := e.requestLogger(opts)
	pool, scorerName, err := e.score(fv, logger)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	res, rest := e.selectCandidates(fv, pool, scorerName, scorerName, opts)
	res.InputQuality = vectorQuality(fv, e.config.Guardrail.ThinInputGroups)

	res, err = e.guardrail.Enforce(&UserProfile{}, res, rest)
	if err != nil {
		return nil, err
	}
	return e.finish(res, opts, start), nil
}

// Recommend runs the full pipeline for one profile.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, p *UserProfile, opts Options) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	opts, err := e.prepareOptions(opts)
	if err != nil {
		return nil, err
	}
	logger := e.requestLogger(opts)
	logger.Debug().
		Int("skills", len(p.Skills)).
		Int("interests", len(p.Interests)).
		Int("values", len(p.Values)).
		Msg("processing recommendation request")

	if len(p.UnknownFields) > 0 {
		logger.Debug().Strs("fields", p.UnknownFields).Msg("ignoring unknown profile fields")
	}

	if err := e.screen(p); err != nil {
		return nil, err
	}

	fv, err := e.builder.Build(p, e.expand(ctx, p, logger))
	if err != nil {
		return nil, err
	}

	pool, scorerName, err := e.score(fv, logger)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	method := scorerName
	if reason := e.supplement.reason(p, topCandidate(pool)); reason != "" && e.generator != nil {
		if generated := e.generate(ctx, p, reason, logger); len(generated) > 0 {
			var kept int
			pool, kept = mergeCandidates(pool, generated)
			if kept > 0 {
				method = MethodHybrid
				e.supplemented.Add(1)
			}
		}
	}

	res, rest := e.selectCandidates(fv, pool, scorerName, method, opts)
	res.InputQuality = assessInput(p, e.config.Guardrail.ThinInputGroups)

	e.enhanceAll(ctx, p, res, rest, logger)

	res, err = e.guardrail.Enforce(p, res, rest)
	if err != nil {
		return nil, err
	}

	res = e.finish(res, opts, start)
	logger.Debug().
		Str("method", res.Method).
		Int("primary", len(res.Primary)).
		Int("alternatives", len(res.Alternatives)).
		Int64("latency_ms", res.LatencyMS).
		Msg("recommendation complete")

	return res, nil
}

// Explain explains one occupation for a profile. The occupation's score and
// confidence are those it would receive in a default ranking.
func (e *Engine) Explain(ctx context.Context, p *UserProfile, occupationID string) (*Candidate, error) {
	if err := e.screen(p); err != nil {
		return nil, err
	}
	if _, ok := e.store.Get(occupationID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, occupationID)
	}

	fv, err := e.builder.Build(p, e.expand(ctx, p, e.logger))
	if err != nil {
		return nil, err
	}
	return e.explainVector(ctx, fv, p, occupationID, assessInput(p, e.config.Guardrail.ThinInputGroups))
}

// ExplainVector explains one occupation for a prebuilt vector. Like Rank it
// screens no raw input and skips narrative enhancement, which needs the
// profile.
func (e *Engine) ExplainVector(ctx context.Context, fv *FeatureVector, occupationID string) (*Candidate, error) {
	if !e.aligned(fv) {
		return nil, &ValidationError{Field: "vector", Reason: "not aligned to the catalog dimension schema"}
	}
	if _, ok := e.store.Get(occupationID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, occupationID)
	}
	return e.explainVector(ctx, fv, nil, occupationID, vectorQuality(fv, e.config.Guardrail.ThinInputGroups))
}

// explainVector scores the catalog against fv, normalizes over the default
// window and explains one candidate. p may be nil.
func (e *Engine) explainVector(ctx context.Context, fv *FeatureVector, p *UserProfile, occupationID string, quality InputQuality) (*Candidate, error) {
	pool, scorerName, err := e.score(fv, e.logger)
	if err != nil {
		return nil, err
	}
	window := e.config.Ranking.DefaultTopN + e.config.Ranking.DefaultAlternativesN
	e.normalize(pool, window, scorerName)

	var c *Candidate
	for i := range pool {
		if pool[i].OccupationID == occupationID {
			c = &pool[i]
			break
		}
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrOccupationNotFound, occupationID)
	}

	e.explainCandidate(fv, c)
	if p != nil && e.enhancer != nil {
		e.enhanceOne(ctx, p, c, e.logger)
	}

	widen := 0.0
	if quality != InputSufficient {
		widen = e.config.Guardrail.ThinInputWidening
	}
	e.guardrail.attachRange(c, widen)

	out := *c
	return &out, nil
}

func (e *Engine) aligned(fv *FeatureVector) bool {
	schema := e.store.Schema()
	return fv != nil && schema.Equal(fv.Schema()) && fv.Len() == schema.Len()
}

func (e *Engine) screen(p *UserProfile) error {
	if err := e.guardrail.Screen(p); err != nil {
		e.rejectedCount.Add(1)
		var gv *GuardrailViolation
		if errors.As(err, &gv) {
			e.recorder.GuardrailRejected(gv.Signal)
			e.logger.Info().Str("signal", gv.Signal).Msg("profile rejected by demographic screen")
		}
		return err
	}
	return nil
}

//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) prepareOptions(opts Options) (Options, error) {
	r := e.config.Ranking
	if opts.TopN < 0 || opts.TopN > r.MaxTopN {
		return opts, &ValidationError{Field: "top_n", Reason: fmt.Sprintf("must be between 0 and %d", r.MaxTopN)}
	}
	if opts.AlternativesN != nil && (*opts.AlternativesN < 0 || *opts.AlternativesN > r.MaxAlternativesN) {
		return opts, &ValidationError{Field: "alternatives_n", Reason: fmt.Sprintf("must be between 0 and %d", r.MaxAlternativesN)}
	}
	if opts.TopN == 0 {
		opts.TopN = r.DefaultTopN
	}
	if opts.AlternativesN == nil {
		opts.AlternativesN = Count(r.DefaultAlternativesN)
	}
	if opts.RequestID == "" {
		opts.RequestID = uuid.NewString()
	}
	return opts, nil
}

//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) requestLogger(opts Options) zerolog.Logger {
	return e.logger.With().
		Str("request_id", opts.RequestID).
		Int("top_n", opts.TopN).
		Int("alternatives_n", opts.alternatives()).
		Logger()
}

// score scores every occupation exactly once and sorts the pool. Any
// learned scorer failure rescores the whole request with similarity.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) score(fv *FeatureVector, logger zerolog.Logger) ([]Candidate, string, error) {
	occupations := e.store.Occupations()

	if e.learned.Available() {
		pool, err := scoreAll(e.learned, fv.Values, occupations)
		if err == nil {
			sortCandidates(pool)
			return pool, algorithms.NameLearned, nil
		}
		e.fallbackCount.Add(1)
		e.recorder.ScorerFallback("classifier_error")
		logger.Warn().Err(err).Msg("learned scorer unavailable, falling back to similarity baseline")
	}

	pool, err := scoreAll(e.similarity, fv.Values, occupations)
	if err != nil {
		return nil, "", fmt.Errorf("similarity scoring failed: %w", err)
	}
	sortCandidates(pool)
	return pool, algorithms.NameSimilarity, nil
}

func scoreAll(s algorithms.Scorer, user []float64, occupations []*catalog.Occupation) ([]Candidate, error) {
	pool := make([]Candidate, len(occupations))
	for i, occ := range occupations {
		raw, err := s.Score(user, occ.Vector())
		if err != nil {
			return nil, fmt.Errorf("occupation %s: %w", occ.ID, err)
		}
		pool[i] = Candidate{
			OccupationID: occ.ID,
			Name:         occ.Name,
			Code:         occ.Code,
			RawScore:     raw,
			Source:       SourceCatalog,
			occupation:   occ,
		}
	}
	return pool, nil
}

func topCandidate(pool []Candidate) *Candidate {
	if len(pool) == 0 {
		return nil
	}
	return &pool[0]
}

// sortCandidates orders by raw score descending, then occupation id.
func sortCandidates(pool []Candidate) {
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].RawScore != pool[j].RawScore {
			return pool[i].RawScore > pool[j].RawScore
		}
		return pool[i].OccupationID < pool[j].OccupationID
	})
}

// normalize fits the display transform on the first window candidates and
// applies it to the whole pool.
func (e *Engine) normalize(pool []Candidate, window int, scorerName string) {
	if window > len(pool) {
		window = len(pool)
	}

	raws := make([]float64, window)
	nativeMax := 0.0
	for i := 0; i < window; i++ {
		raws[i] = pool[i].RawScore
		if pool[i].Source == SourceCatalog && pool[i].RawScore > nativeMax {
			nativeMax = pool[i].RawScore
		}
	}

	n := e.config.Normalization
	target := n.SimilarityRange
	if scorerName == algorithms.NameLearned {
		target = n.LearnedRange
		if nativeMax < n.LowScoreTrigger {
			target = n.LearnedLowRange
		}
	}

	t := reranking.FitWindow(raws, target)
	for i := range pool {
		pool[i].Score = t.Apply(pool[i].RawScore)
		pool[i].Confidence = BandFor(pool[i].Score)
	}
}

// selectCandidates normalizes the pool, splits primaries from the rest,
// picks quality-filtered alternatives and explains everything that can be
// returned. rest is the ranked remainder after the primaries.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) selectCandidates(fv *FeatureVector, pool []Candidate, scorerName, method string, opts Options) (*Result, []Candidate) {
	e.normalize(pool, opts.TopN+opts.alternatives(), scorerName)

	primaryN := opts.TopN
	if primaryN > len(pool) {
		primaryN = len(pool)
	}
	rest := pool[primaryN:]

	entries := make([]reranking.Entry, len(rest))
	for i := range rest {
		entries[i] = reranking.Entry{Name: rest[i].Name, Normalized: rest[i].Score}
	}
	altIdx := reranking.SelectAlternatives(entries, opts.alternatives(), e.config.Ranking.AlternativeThreshold, e.generic)

	// Fillers for the minimum count come from the head of rest.
	need := e.config.Guardrail.MinRecommendations - primaryN
	if need < 0 {
		need = 0
	}
	if need > len(rest) {
		need = len(rest)
	}

	for i := 0; i < primaryN; i++ {
		e.explainCandidate(fv, &pool[i])
	}
	for i := 0; i < need; i++ {
		e.explainCandidate(fv, &rest[i])
	}
	for _, i := range altIdx {
		e.explainCandidate(fv, &rest[i])
	}

	res := &Result{
		Primary:      make([]Candidate, primaryN, primaryN+need),
		Alternatives: make([]Candidate, 0, len(altIdx)),
		Method:       method,
		Scorer:       scorerName,
		Unmapped:     fv.Unmapped,
		RequestID:    opts.RequestID,
	}
	copy(res.Primary, pool[:primaryN])
	for _, i := range altIdx {
		res.Alternatives = append(res.Alternatives, rest[i])
	}

	return res, rest
}

func (e *Engine) explainCandidate(fv *FeatureVector, c *Candidate) {
	if c.Explanation != nil {
		return
	}
	if c.occupation == nil {
		c.Explanation = generatedExplanation(c)
		return
	}
	c.Explanation = e.explainer.Explain(fv.Values, c.occupation.Vector(), c.Score)
}

//nolint:gocritic // hugeParam: opts passed by value for immutability
func (e *Engine) finish(res *Result, opts Options, start time.Time) *Result {
	res.RequestID = opts.RequestID
	res.CatalogVersion = e.store.Version()
	res.TotalCandidates = e.store.Len()
	if res.Unmapped == nil {
		res.Unmapped = []string{}
	}
	elapsed := time.Since(start)
	res.LatencyMS = elapsed.Milliseconds()
	e.recorder.ObserveRequest(res.Method, elapsed.Seconds())
	return res
}

// vectorQuality classifies a prebuilt vector by its non-zero groups.
func vectorQuality(fv *FeatureVector, thinGroups int) InputQuality {
	schema := fv.Schema()
	groups := 0
	for g := catalog.GroupSkill; g <= catalog.GroupConstraint; g++ {
		off := schema.Offset(g)
		for i := off; i < off+schema.GroupLen(g); i++ {
			if fv.Values[i] != 0 {
				groups++
				break
			}
		}
	}
	switch {
	case groups == 0:
		return InputEmpty
	case groups <= thinGroups:
		return InputThin
	default:
		return InputSufficient
	}
}

// expand calls the skill expander under its timeout. Failures are logged
// and yield no expansions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) expand(ctx context.Context, p *UserProfile, logger zerolog.Logger) map[string]map[string]float64 {
	if e.expander == nil || len(p.Skills) == 0 {
		return nil
	}

	names := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		names[i] = s.Name
	}
	dims := e.store.Schema().Skills()

	out, err := callWithTimeout(ctx, e.config.Collaborators.ExpandTimeout,
		func(ctx context.Context) (map[string]map[string]float64, error) {
			return e.expander.Expand(ctx, names, dims)
		})
	if err != nil {
		e.collaboratorFailed(collabExpand, err, logger)
		return nil
	}
	e.recorder.Collaborator(collabExpand, "ok")
	return out
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) generate(ctx context.Context, p *UserProfile, reason string, logger zerolog.Logger) []Candidate {
	logger.Debug().Str("reason", reason).Msg("requesting supplemental careers")

	careers, err := callWithTimeout(ctx, e.config.Collaborators.GenerateTimeout,
		func(ctx context.Context) ([]GeneratedCareer, error) {
			return e.generator.Generate(ctx, p, e.config.Supplement.Count)
		})
	if err != nil {
		e.collaboratorFailed(collabGenerate, err, logger)
		return nil
	}
	e.recorder.Collaborator(collabGenerate, "ok")
	return generatedCandidates(careers)
}

// enhanceAll enhances primary explanations, the fillers that may join them
// and optionally alternatives, concurrently and each under its own timeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) enhanceAll(ctx context.Context, p *UserProfile, res *Result, rest []Candidate, logger zerolog.Logger) {
	if e.enhancer == nil {
		return
	}

	targets := make([]*Candidate, 0, len(res.Primary)+len(res.Alternatives))
	for i := range res.Primary {
		targets = append(targets, &res.Primary[i])
	}
	need := e.config.Guardrail.MinRecommendations - len(res.Primary)
	fillers := make(map[string]struct{})
	for i := 0; i < need && i < len(rest); i++ {
		targets = append(targets, &rest[i])
		fillers[rest[i].OccupationID] = struct{}{}
	}
	if e.config.Collaborators.EnhanceAlternatives {
		for i := range res.Alternatives {
			if _, dup := fillers[res.Alternatives[i].OccupationID]; !dup {
				targets = append(targets, &res.Alternatives[i])
			}
		}
	}

	var g errgroup.Group
	g.SetLimit(e.config.Collaborators.MaxConcurrentEnhance)
	for _, c := range targets {
		c := c
		g.Go(func() error {
			e.enhanceOne(ctx, p, c, logger)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) enhanceOne(ctx context.Context, p *UserProfile, c *Candidate, logger zerolog.Logger) {
	if c.Explanation == nil {
		return
	}
	req := EnhanceRequest{
		Profile:             p,
		OccupationName:      c.Name,
		OccupationCode:      c.Code,
		MechanicalRationale: c.Explanation.Rationale,
		TopFeatures:         c.Explanation.TopFeatures,
		NormalizedScore:     c.Score,
	}

	text, err := callWithTimeout(ctx, e.config.Collaborators.EnhanceTimeout,
		func(ctx context.Context) (string, error) {
			return e.enhancer.Enhance(ctx, req)
		})
	if err != nil {
		e.collaboratorFailed(collabEnhance, err, logger)
		return
	}
	if text == "" {
		e.recorder.Collaborator(collabEnhance, "empty")
		return
	}

	exp := *c.Explanation
	exp.Rationale = text
	exp.Enhanced = true
	c.Explanation = &exp
	e.recorder.Collaborator(collabEnhance, "ok")
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) collaboratorFailed(name string, err error, logger zerolog.Logger) {
	err = collaboratorError(name, err)
	outcome := "error"
	if errors.Is(err, ErrCollaboratorTimeout) {
		outcome = "timeout"
	}
	e.recorder.Collaborator(name, outcome)
	logger.Warn().Err(err).Str("collaborator", name).Msg("collaborator failed, using mechanical result")
}

// callWithTimeout runs fn under a deadline and returns as soon as the
// deadline passes, even if fn ignores its context.
func callWithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				ch <- result{v: zero, err: fmt.Errorf("collaborator panic: %v", r)}
			}
		}()
		v, err := fn(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
