package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/rank"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/synthesis"
	"github.com/claimlens/claimlens/internal/tone"
	"github.com/claimlens/claimlens/internal/verify"
	"github.com/claimlens/claimlens/internal/worker"
)

// Pipeline orchestrates the complete verification process: fetch, extract,
// rank claims, gather and rank evidence, classify, aggregate, score tone,
// and synthesize the final verdict.
type Pipeline struct {
	fetcher        *Fetcher
	claimExtractor *extract.ClaimExtractor
	claimRanker    *rank.ClaimRanker
	evidenceRanker *rank.EvidenceRanker
	searcher       search.Searcher
	classifier     classify.Classifier
	verifier       *verify.Verifier
	toneScorer     *tone.Scorer
	synthesizer    *synthesis.Synthesizer
	renderer       *Renderer
	config         *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	searcher, err := search.New(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("create searcher: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if base, err := os.UserCacheDir(); err == nil {
				dir = filepath.Join(base, "claimlens")
			} else {
				dir = ".claimlens-cache"
			}
		}
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		searcher = search.NewCached(searcher, store, cfg.Cache.DiskTTL)
	}

	index := credibility.NewIndex(cfg.Credibility)

	return &Pipeline{
		fetcher:        NewFetcher(cfg.HTTP, cfg.Cache, store),
		claimExtractor: extract.NewClaimExtractor(cfg.LLM, cfg.Ranker.MaxClaims),
		claimRanker:    rank.NewClaimRanker(cfg.Ranker),
		evidenceRanker: rank.NewEvidenceRanker(index, cfg.Search),
		searcher:       searcher,
		classifier:     classify.New(cfg.LLM),
		verifier:       verify.NewVerifier(),
		toneScorer:     tone.NewScorer(),
		synthesizer:    synthesis.NewSynthesizer(),
		renderer:       NewRenderer(cfg.Output.IncludeFooter),
		config:         cfg,
	}, nil
}

// VerifyURL fetches an article and verifies it
func (p *Pipeline) VerifyURL(ctx context.Context, url string) (*model.FinalVerdict, error) {
	fetchResult, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	verdict, err := p.VerifyText(ctx, fetchResult.HTML, fetchResult.FinalURL)
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// VerifyText verifies raw article content. HTML is reduced to visible text
// first; plain text passes through untouched. sourceURL may be empty.
func (p *Pipeline) VerifyText(ctx context.Context, content, sourceURL string) (*model.FinalVerdict, error) {
	articleText, err := extract.ArticleText(content)
	if err != nil {
		return nil, fmt.Errorf("extract article text: %w", err)
	}

	candidates, err := p.claimExtractor.Extract(ctx, articleText)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	claims := p.claimRanker.Rank(candidates, articleText)
	p.verbose("ranked %d claims from %d candidates\n", len(claims), len(candidates))

	toneScore := p.toneScorer.Score(articleText)

	evidence, classifications, verdicts := p.verifyClaims(ctx, claims)

	in := synthesis.Input{
		Verdicts:        verdicts,
		Evidence:        evidence,
		Classifications: classifications,
		Tone:            toneScore,
		AvgCredibility:  avgCredibility(claims, evidence),
		SourceURL:       sourceURL,
	}

	verdict := p.synthesizer.Synthesize(in)
	return &verdict, nil
}

// claimJob verifies one claim: search, rank evidence, classify, aggregate
type claimJob struct {
	index    int
	claim    model.Claim
	pipeline *Pipeline
	timeout  time.Duration
}

// claimResult carries everything produced for one claim
type claimResult struct {
	index           int
	evidence        []model.EvidenceItem
	classifications []model.Classification
	verdict         model.ClaimVerdict
	err             error
}

// GetError returns the per-claim error, if any
func (r *claimResult) GetError() error {
	return r.err
}

// Execute runs the claim verification under its own timeout. Failures
// degrade to an UNVERIFIED verdict rather than aborting the article.
func (j *claimJob) Execute(ctx context.Context) worker.Result {
	claimCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	p := j.pipeline
	claim := j.claim

	unverified := model.ClaimVerdict{
		ClaimID:   claim.ID,
		ClaimText: claim.Text,
		Verdict:   model.ClaimUnverified,
	}

	query := extract.SearchQuery(claim.Text)
	hits, err := p.searcher.Search(claimCtx, query)
	if err != nil {
		p.verbose("search failed for %s: %v\n", claim.ID, err)
		return &claimResult{index: j.index, verdict: unverified, err: err}
	}

	evidence := p.evidenceRanker.Rank(claim, hits)
	p.verbose("%s: %d evidence items from %d hits\n", claim.ID, len(evidence), len(hits))

	var classifications []model.Classification
	for _, item := range evidence {
		scores, err := p.classifier.Classify(claimCtx, item.Snippet, claim.Text)
		if err != nil {
			p.verbose("classification failed for %s/%s: %v\n", claim.ID, item.ID, err)
			continue
		}
		classifications = append(classifications, scores.Result(claim.ID, item.ID))
	}

	verdict := p.verifier.Aggregate(claim, evidence, classifications)

	return &claimResult{
		index:           j.index,
		evidence:        evidence,
		classifications: classifications,
		verdict:         verdict,
	}
}

// verifyClaims runs per-claim verification concurrently and reassembles the
// results in claim order, so identical inputs yield identical output.
func (p *Pipeline) verifyClaims(ctx context.Context, claims []model.Claim) (map[string][]model.EvidenceItem, map[string][]model.Classification, []model.ClaimVerdict) {
	evidence := make(map[string][]model.EvidenceItem, len(claims))
	classifications := make(map[string][]model.Classification, len(claims))
	verdicts := make([]model.ClaimVerdict, len(claims))

	if len(claims) == 0 {
		return evidence, classifications, nil
	}

	pool := worker.NewPool(ctx, p.config.Concurrency.ClaimWorkers)
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&claimJob{
			index:    i,
			claim:    claim,
			pipeline: p,
			timeout:  p.config.Concurrency.ClaimTimeout,
		})
	}

	for _, result := range pool.Wait() {
		r := result.(*claimResult)
		claim := claims[r.index]
		verdicts[r.index] = r.verdict
		if len(r.evidence) > 0 {
			evidence[claim.ID] = r.evidence
		}
		if len(r.classifications) > 0 {
			classifications[claim.ID] = r.classifications
		}
	}

	return evidence, classifications, verdicts
}

// avgCredibility is the mean source credibility over all evidence items,
// in claim order. Defaults to 0.5 when no evidence was found at all.
func avgCredibility(claims []model.Claim, evidence map[string][]model.EvidenceItem) float64 {
	sum := 0.0
	n := 0
	for _, claim := range claims {
		for _, item := range evidence[claim.ID] {
			sum += item.Credibility
			n++
		}
	}
	if n == 0 {
		return 0.5
	}
	return sum / float64(n)
}

// verbose writes progress to stderr when verbose output is enabled
func (p *Pipeline) verbose(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
