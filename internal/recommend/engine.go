// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colaborador-ia/colaborador/internal/cache"
	"github.com/colaborador-ia/colaborador/internal/metrics"
	"github.com/colaborador-ia/colaborador/internal/recommend/algorithms"
	"github.com/colaborador-ia/colaborador/internal/snapshot"
)

// SnapshotProvider returns the snapshot to serve, or nil before the first load.
type SnapshotProvider interface {
	Current() *snapshot.Snapshot
}

// ContentScorer scores authors against a resolved concept vector.
type ContentScorer interface {
	Name() string
	Score(ctx context.Context, snap *snapshot.Snapshot, query map[string]float64) ([]algorithms.Scored, error)
}

// NetworkScorer scores authors by graph proximity to a seed author index.
type NetworkScorer interface {
	Name() string
	Score(ctx context.Context, snap *snapshot.Snapshot, seed int) ([]algorithms.Scored, error)
}

// Engine answers recommendation requests against the current snapshot.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	snapshots SnapshotProvider

	scorerMu sync.RWMutex
	content  ContentScorer
	network  NetworkScorer

	cache *cache.LRU[*Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine with the default scorers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, snapshots SnapshotProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if snapshots == nil {
		return nil, errors.New("snapshot provider is required")
	}

	e := &Engine{
		config:    cfg.Clone(),
		logger:    logger.With().Str("component", "recommend").Logger(),
		snapshots: snapshots,
		content: algorithms.NewContentBased(algorithms.ContentBasedConfig{
			TopConcepts: cfg.ContentBased.TopConcepts,
		}),
		network: algorithms.NewCollaborative(algorithms.CollaborativeConfig{
			NumHops:     cfg.Collaborative.NumHops,
			DecayFactor: cfg.Collaborative.DecayFactor,
			MaxFrontier: cfg.Collaborative.MaxFrontier,
		}),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// SetContentScorer replaces the content-based scorer.
func (e *Engine) SetContentScorer(s ContentScorer) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()
	e.content = s
	e.logger.Info().Str("scorer", s.Name()).Msg("registered content scorer")
}

// SetNetworkScorer replaces the collaborative scorer.
func (e *Engine) SetNetworkScorer(s NetworkScorer) {
	e.scorerMu.Lock()
	defer e.scorerMu.Unlock()
	e.network = s
	e.logger.Info().Str("scorer", s.Name()).Msg("registered network scorer")
}

func (e *Engine) scorers() (ContentScorer, NetworkScorer) {
	e.scorerMu.RLock()
	defer e.scorerMu.RUnlock()
	return e.content, e.network
}

// query is a validated request bound to one snapshot.
type query struct {
	mode    Mode
	weights Weights
	orderBy OrderBy
	limit   int
	country string

	vector  map[string]float64
	ignored []string
	seed    int

	requestID string
}

// Recommend classifies the request, runs the scorers it needs, then blends,
// filters, orders and truncates the result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	mode := ModeOf(req)
	resp, candidates, err := e.recommend(ctx, req, mode, start)

	outcome := "ok"
	switch {
	case err == nil:
	case IsClientError(err):
		outcome = "client_error"
	case errors.Is(err, ErrSnapshotUnavailable):
		outcome = "unavailable"
	default:
		outcome = "error"
		e.errorCount.Add(1)
	}
	metrics.RecordRecommendation(mode.String(), outcome, time.Since(start), candidates)

	return resp, err
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, mode Mode, start time.Time) (*Response, int, error) {
	q, err := e.validateRequest(req, mode)
	if err != nil {
		return nil, 0, err
	}

	snap := e.snapshots.Current()
	if snap == nil {
		return nil, 0, ErrSnapshotUnavailable
	}

	if err := e.bindSnapshot(&q, req, snap); err != nil {
		return nil, 0, err
	}

	logger := e.createRequestLogger(q, snap)
	logger.Debug().Msg("processing recommendation request")
	if len(q.ignored) > 0 {
		logger.Debug().Strs("ignored_concepts", q.ignored).Msg("unknown concepts ignored")
	}

	key := e.cacheKey(q, snap)
	if resp := e.tryGetCachedResponse(key, q, start, logger); resp != nil {
		return resp, resp.TotalRecommendations, nil
	}

	cbResults, cfResults, err := e.runScorers(ctx, q, snap)
	if err != nil {
		return nil, 0, fmt.Errorf("score %s query: %w", q.mode, err)
	}

	candidates := e.assemble(q, snap, cbResults, cfResults)
	scored := len(candidates)
	page, total := ApplyPipeline(candidates, PipelineOptions{
		CountryCode: q.country,
		OrderBy:     q.orderBy,
		Limit:       q.limit,
	})

	resp := &Response{
		Recommendations:      page,
		TotalRecommendations: total,
		Metadata:             e.buildResponseMetadata(q, snap, start, false),
	}
	e.cacheResponse(key, resp)

	logger.Debug().
		Int("scored", scored).
		Int("total", total).
		Int("returned", len(page)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, scored, nil
}

// validateRequest checks everything that does not need the snapshot.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) validateRequest(req Request, mode Mode) (query, error) {
	q := query{mode: mode, requestID: req.RequestID, seed: -1}
	if q.requestID == "" {
		q.requestID = uuid.NewString()
	}

	if mode == ModeInvalid {
		return q, ErrEmptyQuery
	}
	if len(req.ConceptVector) > e.config.Limits.MaxConceptVector {
		return q, fmt.Errorf("%w: %d concepts, at most %d allowed",
			ErrTooManyConcepts, len(req.ConceptVector), e.config.Limits.MaxConceptVector)
	}

	q.weights = Weights{Alpha: e.config.Blend.DefaultAlpha, Beta: e.config.Blend.DefaultBeta}
	if req.Alpha != nil {
		q.weights.Alpha = *req.Alpha
	}
	if req.Beta != nil {
		q.weights.Beta = *req.Beta
	}
	if err := q.weights.Validate(); err != nil {
		return q, err
	}

	q.orderBy = req.OrderBy
	if q.orderBy == "" {
		q.orderBy = OrderSimilarity
	}
	if !q.orderBy.Valid() {
		return q, fmt.Errorf("%w: %q", ErrInvalidOrder, req.OrderBy)
	}

	if req.CountryCode != "" {
		q.country = NormalizeCountry(req.CountryCode)
		if !IsLatamCountry(q.country) {
			return q, fmt.Errorf("%w: %q", ErrInvalidCountry, req.CountryCode)
		}
	}

	q.limit = ClampLimit(req.Limit, e.config.Limits.DefaultLimit, e.config.Limits.MaxLimit)
	return q, nil
}

// bindSnapshot resolves the seed author and the concept vector. Unknown
// concept ids and non-positive weights are dropped; the first entry wins for
// a repeated id.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) bindSnapshot(q *query, req Request, snap *snapshot.Snapshot) error {
	if req.AuthorID != "" {
		seed, ok := snap.AuthorIndex(req.AuthorID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAuthor, req.AuthorID)
		}
		q.seed = seed
	}

	if len(req.ConceptVector) == 0 {
		return nil
	}

	catalog := snap.Catalog()
	q.vector = make(map[string]float64, len(req.ConceptVector))
	for _, cw := range req.ConceptVector {
		if _, dup := q.vector[cw.ID]; dup {
			continue
		}
		weight := 1.0
		if cw.Weight != nil {
			weight = *cw.Weight
		}
		if !catalog.Contains(cw.ID) || weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			q.ignored = append(q.ignored, cw.ID)
			continue
		}
		q.vector[cw.ID] = weight
	}
	return nil
}

// createRequestLogger creates a logger with request context.
func (e *Engine) createRequestLogger(q query, snap *snapshot.Snapshot) zerolog.Logger {
	return e.logger.With().
		Str("request_id", q.requestID).
		Str("mode", q.mode.String()).
		Str("snapshot_version", snap.Version()).
		Logger()
}

// algResult holds the output of one scorer run.
type algResult struct {
	name    string
	results []algorithms.Scored
	err     error
}

// runScorers runs the scorers required by the mode. In hybrid mode CB and CF
// run in parallel and both must finish before blending.
func (e *Engine) runScorers(ctx context.Context, q query, snap *snapshot.Snapshot) (cb, cf []algorithms.Scored, err error) {
	content, network := e.scorers()

	var cbRes, cfRes algResult
	var wg sync.WaitGroup

	if q.mode == ModeConcepts || q.mode == ModeHybrid {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cbRes = e.runSingleScorer(ctx, content.Name(), func(ctx context.Context) ([]algorithms.Scored, error) {
				return content.Score(ctx, snap, q.vector)
			})
		}()
	}
	if q.mode == ModeAuthor || q.mode == ModeHybrid {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfRes = e.runSingleScorer(ctx, network.Name(), func(ctx context.Context) ([]algorithms.Scored, error) {
				return network.Score(ctx, snap, q.seed)
			})
		}()
	}
	wg.Wait()

	if cbRes.err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cbRes.name, cbRes.err)
	}
	if cfRes.err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cfRes.name, cfRes.err)
	}
	return cbRes.results, cfRes.results, nil
}

// runSingleScorer runs one scorer under the prediction timeout.
func (e *Engine) runSingleScorer(ctx context.Context, name string, fn func(context.Context) ([]algorithms.Scored, error)) algResult {
	scorerCtx, cancel := context.WithTimeout(ctx, e.config.Limits.PredictionTimeout)
	defer cancel()

	start := time.Now()
	results, err := fn(scorerCtx)
	metrics.RecordScorer(name, time.Since(start))

	return algResult{name: name, results: results, err: err}
}

// assemble normalizes each scorer's output, blends per mode and attaches the
// denormalized author fields.
func (e *Engine) assemble(q query, snap *snapshot.Snapshot, cb, cf []algorithms.Scored) []Recommendation {
	cb = withoutAuthor(cb, q.seed)
	cbNorm := normalizeResults(cb)
	cfNorm := normalizeResults(cf)

	var similarity map[int]float64
	switch q.mode {
	case ModeConcepts:
		similarity = minMaxOnly(cbNorm)
	case ModeAuthor:
		similarity = minMaxOnly(cfNorm)
	default:
		similarity = Blend(minMaxOnly(cbNorm), minMaxOnly(cfNorm), q.weights)
	}

	topConcepts := make(map[int][]algorithms.ConceptContribution, len(cb))
	for _, s := range cb {
		topConcepts[s.Author] = s.TopConcepts
	}

	catalog := snap.Catalog()
	out := make([]Recommendation, 0, len(similarity))
	for idx, score := range similarity {
		author := snap.AuthorAt(idx)
		rec := Recommendation{
			AuthorID:        author.ID,
			ORCID:           author.ORCID,
			DisplayName:     author.DisplayName,
			CountryCode:     author.CountryCode,
			InstitutionName: snap.InstitutionName(author.InstitutionID),
			SimilarityScore: clampUnit(score),
			CBScore:         cbNorm[idx].MinMax,
			CFScore:         cfNorm[idx].MinMax,
			CBZScore:        cbNorm[idx].Z,
			CFZScore:        cfNorm[idx].Z,
			WorksCount:      author.WorksCount,
			CitedByCount:    author.CitedByCount,
			TopConcepts:     make([]TopConcept, 0, len(topConcepts[idx])),
		}
		for _, c := range topConcepts[idx] {
			concept, _ := catalog.Lookup(c.ConceptID)
			rec.TopConcepts = append(rec.TopConcepts, TopConcept{
				ConceptID:   c.ConceptID,
				DisplayName: concept.DisplayName,
				Score:       c.Score,
			})
		}
		out = append(out, rec)
	}
	return out
}

// withoutAuthor drops the seed from CB results so a hybrid query never
// recommends its own seed. It runs before normalization.
func withoutAuthor(results []algorithms.Scored, author int) []algorithms.Scored {
	if author < 0 {
		return results
	}
	for i, s := range results {
		if s.Author == author {
			out := make([]algorithms.Scored, 0, len(results)-1)
			out = append(out, results[:i]...)
			return append(out, results[i+1:]...)
		}
	}
	return results
}

// normalizeResults applies per-query normalization to one scorer's output.
func normalizeResults(results []algorithms.Scored) map[int]NormalizedScore {
	raw := make([]float64, len(results))
	for i, s := range results {
		raw[i] = s.Score
	}
	norm := Normalize(raw)

	out := make(map[int]NormalizedScore, len(results))
	for i, s := range results {
		out[s.Author] = norm[i]
	}
	return out
}

func minMaxOnly(in map[int]NormalizedScore) map[int]float64 {
	out := make(map[int]float64, len(in))
	for author, n := range in {
		out[author] = n.MinMax
	}
	return out
}

// buildResponseMetadata builds response metadata.
func (e *Engine) buildResponseMetadata(q query, snap *snapshot.Snapshot, start time.Time, cacheHit bool) ResponseMetadata {
	return ResponseMetadata{
		RequestID:       q.requestID,
		Mode:            q.mode.String(),
		SnapshotVersion: snap.Version(),
		OrderBy:         q.orderBy,
		Limit:           q.limit,
		Alpha:           q.weights.Alpha,
		Beta:            q.weights.Beta,
		IgnoredConcepts: q.ignored,
		LatencyMS:       time.Since(start).Milliseconds(),
		CacheHit:        cacheHit,
		Timestamp:       time.Now().UTC(),
	}
}

// cacheKey identifies a request against one snapshot. A snapshot swap changes
// the key, so stale entries are never served.
func (e *Engine) cacheKey(q query, snap *snapshot.Snapshot) string {
	var b strings.Builder
	b.WriteString(snap.Version())
	b.WriteByte('@')
	b.WriteString(strconv.FormatInt(snap.BuiltAt().UnixNano(), 10))
	b.WriteByte('|')
	b.WriteString(q.mode.String())
	b.WriteByte('|')

	ids := make([]string, 0, len(q.vector))
	for id := range q.vector {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(q.vector[id], 'g', -1, 64))
		b.WriteByte(',')
	}

	fmt.Fprintf(&b, "|%d|%g|%g|%s|%d|%s", q.seed, q.weights.Alpha, q.weights.Beta, q.orderBy, q.limit, q.country)
	return b.String()
}

// tryGetCachedResponse returns a copy of a cached response, if any.
func (e *Engine) tryGetCachedResponse(key string, q query, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(key)
	metrics.RecordCacheLookup("recommend", ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := copyResponse(cached)
	resp.Metadata.RequestID = q.requestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now().UTC()
	logger.Debug().Msg("cache hit")
	return resp
}

// cacheResponse stores a copy so callers may modify what they received.
func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, copyResponse(resp))
}

// copyResponse deep-copies every slice so cached entries and the
// responses handed to callers never share backing arrays.
func copyResponse(resp *Response) *Response {
	recs := make([]Recommendation, len(resp.Recommendations))
	copy(recs, resp.Recommendations)
	for i := range recs {
		if recs[i].TopConcepts != nil {
			recs[i].TopConcepts = append(make([]TopConcept, 0, len(recs[i].TopConcepts)), recs[i].TopConcepts...)
		}
	}
	meta := resp.Metadata
	if meta.IgnoredConcepts != nil {
		meta.IgnoredConcepts = append(make([]string, 0, len(meta.IgnoredConcepts)), meta.IgnoredConcepts...)
	}
	return &Response{
		Recommendations:      recs,
		TotalRecommendations: resp.TotalRecommendations,
		Metadata:             meta,
	}
}

// InvalidateCache drops every cached response. Entries from an older
// snapshot can never be served; this only releases their memory.
func (e *Engine) InvalidateCache() {
	if e.cache == nil {
		return
	}
	e.cache.Purge()
	e.logger.Debug().Msg("cache cleared")
}

// Metrics returns the current engine counters.
func (e *Engine) Metrics() Metrics {
	m := Metrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
	if e.cache != nil {
		m.CacheEntries = e.cache.Len()
	}
	return m
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
