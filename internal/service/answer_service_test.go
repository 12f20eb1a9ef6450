package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/chunker"
	"helpdesk/internal/domain"
	"helpdesk/internal/index"
	"helpdesk/internal/llm"
	"helpdesk/internal/metrics"
	"helpdesk/internal/rules"
)

const corpus = `The hostel fee for the academic year is 60000 rupees, payable in two installments.
The hostel warden can be reached at warden@college.edu for room allocation queries.
The central library is open from 8 am to 8 pm on weekdays.
Library cards are issued by the library office within one week of admission.
Semester examinations are held in November and April every year.
The college canteen serves breakfast, lunch and snacks.`

type spyRetriever struct {
	mu    sync.Mutex
	inner domain.Retriever
	calls int
}

func (s *spyRetriever) Retrieve(query string, topK int, minScore float64) []domain.SearchResult {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.inner == nil {
		return nil
	}
	return s.inner.Retrieve(query, topK, minScore)
}

func buildIndex() *index.Index {
	return index.Build(chunker.NewSentenceChunker(100).Chunk(corpus))
}

func newService(r domain.Retriever, gen domain.Generator, opts Options) *AnswerService {
	if opts.MinScore == 0 {
		opts.MinScore = index.DefaultMinScore
	}
	return NewAnswerService(rules.Default(), r, gen, opts, nil, nil)
}

func TestAnswer_EmptyQueryTouchesNothing(t *testing.T) {
	spy := &spyRetriever{inner: buildIndex()}
	gen := llm.NewMockGenerator()
	svc := newService(spy, gen, Options{})

	for _, q := range []string{"", "   ", "\n\t"} {
		a := svc.Answer(context.Background(), q)
		assert.Equal(t, PromptReply, a.Text)
		assert.Equal(t, domain.SourcePrompt, a.Source)
	}
	assert.Zero(t, spy.calls)
	assert.Zero(t, gen.CallCount())
}

func TestAnswer_GreetingRegardlessOfCorpus(t *testing.T) {
	for name, r := range map[string]domain.Retriever{
		"with corpus": buildIndex(),
		"no corpus":   nil,
		"empty index": index.Build(nil),
	} {
		t.Run(name, func(t *testing.T) {
			gen := llm.NewMockGenerator()
			a := newService(r, gen, Options{}).Answer(context.Background(), "hello")
			assert.Equal(t, GreetingReply, a.Text)
			assert.Equal(t, domain.SourceGreeting, a.Source)
			assert.Zero(t, gen.CallCount())
		})
	}
}

func TestAnswer_GreetingBeatsPredefined(t *testing.T) {
	svc := newService(nil, llm.NewMockGenerator(), Options{})
	a := svc.Answer(context.Background(), "Hi, what is the admission process?")
	assert.Equal(t, domain.SourceGreeting, a.Source)
}

func TestAnswer_PredefinedBeatsExtractor(t *testing.T) {
	svc := newService(nil, llm.NewMockGenerator(), Options{})
	a := svc.Answer(context.Background(), "can I email about the admission process")
	assert.Equal(t, domain.SourcePredefined, a.Source)
	assert.Equal(t, rules.DefaultTable[0].Answer, a.Text)
}

func TestAnswer_HostelFeeWithoutCorpus(t *testing.T) {
	spy := &spyRetriever{}
	gen := llm.NewMockGenerator()
	a := newService(spy, gen, Options{}).Answer(context.Background(), "what is the hostel fee")

	assert.Equal(t, domain.SourceDirect, a.Source)
	assert.Equal(t, "The hostel fee is Rs. 60,000 per year, including mess charges.", a.Text)
	assert.Zero(t, gen.CallCount())
	assert.Zero(t, spy.calls)
}

func TestAnswer_GroundedGeneration(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Text: "The library is open 8 am to 8 pm."})
	a := newService(buildIndex(), gen, Options{Model: "command-r"}).Answer(context.Background(), "When is the library open?")

	assert.Equal(t, domain.SourceGrounded, a.Source)
	assert.Equal(t, "The library is open 8 am to 8 pm.", a.Text)

	require.Equal(t, 1, gen.CallCount())
	req := gen.Calls()[0]
	assert.Equal(t, "command-r", req.Model)
	assert.Equal(t, "When is the library open?", req.Message)
	assert.Equal(t, GroundedPreamble, req.Preamble)
	require.NotEmpty(t, req.Documents)
	assert.LessOrEqual(t, len(req.Documents), index.DefaultTopK)
	for i, d := range req.Documents {
		assert.Equal(t, []string{"0", "1", "2"}[i], d.ID)
	}
	assert.Contains(t, req.Documents[0].Text, "central library")
	assert.Equal(t, req.Documents, a.Documents)
}

func TestAnswer_NoOverlapIsUngrounded(t *testing.T) {
	spy := &spyRetriever{inner: buildIndex()}
	gen := llm.NewMockGenerator(llm.MockResponse{Text: "Please contact the office."})
	a := newService(spy, gen, Options{}).Answer(context.Background(), "qwzx plorb vint")

	assert.Equal(t, domain.SourceUngrounded, a.Source)
	assert.Equal(t, 1, spy.calls)
	require.Equal(t, 1, gen.CallCount())
	req := gen.Calls()[0]
	assert.Empty(t, req.Documents)
	assert.Equal(t, UngroundedPreamble, req.Preamble)
}

func TestAnswer_NilRetrieverIsUngrounded(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Text: "ok"})
	a := newService(nil, gen, Options{}).Answer(context.Background(), "where is the library")
	assert.Equal(t, domain.SourceUngrounded, a.Source)
}

func TestAnswer_TransportFailureFallsBack(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Error: errors.New("dial tcp 10.0.0.1:443: connection refused")})
	m := metrics.New()
	svc := NewAnswerService(nil, buildIndex(), gen, Options{MinScore: index.DefaultMinScore}, nil, m)

	a := svc.Answer(context.Background(), "When is the library open?")
	assert.Equal(t, FallbackReply, a.Text)
	assert.Equal(t, domain.SourceFallback, a.Source)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GenerationFailures.WithLabelValues(string(llm.KindTransport))), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues(string(domain.SourceFallback))), 0)
}

func TestAnswer_APIErrorFallsBack(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Error: &llm.APIError{Provider: "mock", StatusCode: 429}})
	a := newService(nil, gen, Options{}).Answer(context.Background(), "qwzx")
	assert.Equal(t, FallbackReply, a.Text)
}

func TestAnswer_NoGeneratorFallsBack(t *testing.T) {
	a := newService(buildIndex(), nil, Options{}).Answer(context.Background(), "When is the library open?")
	assert.Equal(t, domain.SourceFallback, a.Source)
}

func TestAnswer_CacheServesRepeatedQuestions(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Text: "first"}, llm.MockResponse{Text: "second"})
	m := metrics.New()
	svc := NewAnswerService(nil, buildIndex(), gen, Options{MinScore: index.DefaultMinScore, CacheSize: 8}, nil, m)
	ctx := context.Background()

	a1 := svc.Answer(ctx, "When is the library open?")
	a2 := svc.Answer(ctx, "  when is THE library   open? ")
	assert.Equal(t, "first", a1.Text)
	assert.Equal(t, a1, a2)
	assert.Equal(t, 1, gen.CallCount())
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheHitsTotal), 0)
}

func TestAnswer_CacheSkipsFallback(t *testing.T) {
	gen := llm.NewMockGenerator(llm.MockResponse{Error: errors.New("timeout")}, llm.MockResponse{Text: "recovered"})
	svc := newService(nil, gen, Options{CacheSize: 8})
	ctx := context.Background()

	assert.Equal(t, FallbackReply, svc.Answer(ctx, "qwzx").Text)
	assert.Equal(t, "recovered", svc.Answer(ctx, "qwzx").Text)
	assert.Equal(t, 2, gen.CallCount())
	assert.Equal(t, 1, svc.cache.len())
}

// ctxGenerator fails the way a real client does when its context is done.
type ctxGenerator struct{}

func (ctxGenerator) Name() string { return "ctx" }

func (ctxGenerator) Generate(ctx context.Context, _ domain.GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "generated", nil
}

func TestAnswer_CachedCallIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newService(nil, ctxGenerator{}, Options{CacheSize: 8})
	a := svc.Answer(ctx, "qwzx plorb")
	assert.Equal(t, "generated", a.Text)
	assert.Equal(t, domain.SourceUngrounded, a.Source)

	uncached := newService(nil, ctxGenerator{}, Options{})
	assert.Equal(t, domain.SourceFallback, uncached.Answer(ctx, "qwzx plorb").Source)
}

func TestAnswer_ConcurrentRequests(t *testing.T) {
	svc := newService(buildIndex(), llm.NewMockGenerator(), Options{})
	queries := []string{"", "hello", "what is the hostel fee", "When is the library open?", "qwzx plorb"}
	want := []domain.Source{domain.SourcePrompt, domain.SourceGreeting, domain.SourceDirect, domain.SourceGrounded, domain.SourceUngrounded}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for j, q := range queries {
			wg.Add(1)
			go func(q string, want domain.Source) {
				defer wg.Done()
				assert.Equal(t, want, svc.Answer(context.Background(), q).Source)
			}(q, want[j])
		}
	}
	wg.Wait()
}

func TestDocuments(t *testing.T) {
	assert.Nil(t, Documents(nil))
	docs := Documents([]domain.SearchResult{
		{Chunk: domain.Chunk{ID: 7, Text: "seven"}, Score: 0.9},
		{Chunk: domain.Chunk{ID: 2, Text: "two"}, Score: 0.4},
	})
	assert.Equal(t, []domain.GroundingDocument{{ID: "0", Text: "seven"}, {ID: "1", Text: "two"}}, docs)
}
