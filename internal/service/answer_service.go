// Package service resolves user questions into answers.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"helpdesk/internal/domain"
	"helpdesk/internal/index"
	"helpdesk/internal/llm"
	"helpdesk/internal/logging"
	"helpdesk/internal/metrics"
	"helpdesk/internal/rules"
)

const (
	PromptReply   = "Please type a question and I will do my best to help."
	GreetingReply = "Hello! How can I help you today?"
	FallbackReply = "Sorry, I am unable to answer that right now. Please try again in a moment or contact the college office."

	GroundedPreamble = "You are a helpful college help-desk assistant. Answer the question using only the provided documents. " +
		"If the documents do not contain the answer, say politely that you do not have that information."
	UngroundedPreamble = "You are a helpful college help-desk assistant. No reference documents matched this question. " +
		"Give a short, polite answer and, if you are not sure, suggest contacting the college office for accurate details."
)

// Options tunes retrieval, generation and caching.
type Options struct {
	Model     string
	TopK      int
	MinScore  float64
	CacheSize int
	CacheTTL  time.Duration
}

// AnswerService walks a fixed escalation of resolution stages and stops at
// the first one that produces an answer. All state it holds is read-only.
type AnswerService struct {
	rules     *rules.Set
	retriever domain.Retriever
	generator domain.Generator
	opts      Options
	cache     *answerCache
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewAnswerService wires the resolver. retriever may be nil, in which case
// every query reaching retrieval is answered ungrounded. rs defaults to the
// built-in rules, logger and m are optional.
func NewAnswerService(rs *rules.Set, retriever domain.Retriever, generator domain.Generator, opts Options, logger *zap.Logger, m *metrics.Metrics) *AnswerService {
	if rs == nil {
		rs = rules.Default()
	}
	if opts.TopK <= 0 {
		opts.TopK = index.DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnswerService{
		rules:     rs,
		retriever: retriever,
		generator: generator,
		opts:      opts,
		cache:     newAnswerCache(opts.CacheSize, opts.CacheTTL),
		logger:    logger,
		metrics:   m,
	}
}

// Answer resolves query. It never fails: generation errors become
// FallbackReply.
func (s *AnswerService) Answer(ctx context.Context, query string) domain.Answer {
	a := s.resolve(ctx, query)
	if s.metrics != nil {
		s.metrics.ResolutionsTotal.WithLabelValues(string(a.Source)).Inc()
	}
	return a
}

func (s *AnswerService) resolve(ctx context.Context, query string) domain.Answer {
	if strings.TrimSpace(query) == "" {
		return domain.Answer{Text: PromptReply, Source: domain.SourcePrompt}
	}
	if s.rules.Greeting.Match(query) {
		return domain.Answer{Text: GreetingReply, Source: domain.SourceGreeting}
	}
	if text, ok := s.rules.Table.Lookup(query); ok {
		return domain.Answer{Text: text, Source: domain.SourcePredefined}
	}
	if text, ok := s.rules.Extractor.Extract(query); ok {
		return domain.Answer{Text: text, Source: domain.SourceDirect}
	}
	if s.cache == nil {
		return s.generate(ctx, query)
	}
	// shared by every waiter; no single caller may cancel it
	shared := context.WithoutCancel(ctx)
	a, hit := s.cache.getOrCompute(query, func() domain.Answer {
		return s.generate(shared, query)
	})
	if hit && s.metrics != nil {
		s.metrics.CacheHitsTotal.Inc()
	}
	return a
}

func (s *AnswerService) generate(ctx context.Context, query string) domain.Answer {
	logger := logging.FromContext(ctx, s.logger)

	results := s.retrieve(query)
	if s.metrics != nil {
		s.metrics.RetrievedChunks.Observe(float64(len(results)))
	}
	req := domain.GenerateRequest{Model: s.opts.Model, Message: query}
	source := domain.SourceUngrounded
	if len(results) > 0 {
		source = domain.SourceGrounded
		req.Preamble = GroundedPreamble
		req.Documents = Documents(results)
	} else {
		req.Preamble = UngroundedPreamble
	}

	if s.generator == nil {
		logger.Error("no generator configured")
		return domain.Answer{Text: FallbackReply, Source: domain.SourceFallback, Documents: req.Documents}
	}

	start := time.Now()
	out := llm.Call(ctx, s.generator, req)
	elapsed := time.Since(start)

	if !out.OK() {
		if s.metrics != nil {
			s.metrics.GenerationDuration.WithLabelValues(s.generator.Name(), "failure").Observe(elapsed.Seconds())
			s.metrics.GenerationFailures.WithLabelValues(string(out.Failure.Kind)).Inc()
		}
		logger.Warn("generation failed, returning fallback",
			zap.String("provider", s.generator.Name()),
			zap.String("kind", string(out.Failure.Kind)),
			zap.String("mode", string(source)),
			zap.Duration("elapsed", elapsed),
			zap.Error(out.Failure.Err),
		)
		return domain.Answer{Text: FallbackReply, Source: domain.SourceFallback, Documents: req.Documents}
	}
	if s.metrics != nil {
		s.metrics.GenerationDuration.WithLabelValues(s.generator.Name(), "success").Observe(elapsed.Seconds())
	}
	logger.Debug("generated answer",
		zap.String("mode", string(source)),
		zap.Int("documents", len(req.Documents)),
		zap.Duration("elapsed", elapsed),
	)
	return domain.Answer{Text: out.Text, Source: source, Documents: req.Documents}
}

func (s *AnswerService) retrieve(query string) []domain.SearchResult {
	if s.retriever == nil {
		return nil
	}
	return s.retriever.Retrieve(query, s.opts.TopK, s.opts.MinScore)
}

// Documents converts retrieved chunks to grounding documents whose IDs are
// their positions in results.
func Documents(results []domain.SearchResult) []domain.GroundingDocument {
	if len(results) == 0 {
		return nil
	}
	docs := make([]domain.GroundingDocument, len(results))
	for i, r := range results {
		docs[i] = domain.GroundingDocument{ID: strconv.Itoa(i), Text: r.Chunk.Text}
	}
	return docs
}
