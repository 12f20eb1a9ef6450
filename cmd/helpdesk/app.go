package main

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"helpdesk/internal/chunker"
	"helpdesk/internal/config"
	"helpdesk/internal/corpus"
	"helpdesk/internal/domain"
	"helpdesk/internal/index"
	"helpdesk/internal/llm"
	"helpdesk/internal/logging"
	"helpdesk/internal/metrics"
	"helpdesk/internal/rules"
	"helpdesk/internal/service"
)

// app holds everything built once at startup and shared read-only.
type app struct {
	cfg     *config.AppConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	rules   *rules.Set
	corpus  corpus.Corpus
	index   *index.Index
}

// bootstrap loads configuration and builds the index. A missing or broken
// corpus is not an error: the index stays empty and answers are ungrounded.
func bootstrap() (*app, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
	}

	rs := rules.Default()
	if cfg.Rules.File != "" {
		rs, err = rules.LoadFile(cfg.Rules.File)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
		}
		logger.Info("rules loaded", zap.String("file", cfg.Rules.File))
	}

	a := &app{cfg: cfg, logger: logger, metrics: metrics.New(), rules: rs}

	start := time.Now()
	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Warn("corpus unavailable, answering ungrounded", zap.String("path", cfg.Corpus.Path), zap.Error(err))
		a.index = index.Build(nil)
		return a, nil
	}
	a.corpus = c
	chunks := chunker.NewSentenceChunker(cfg.Chunker.MaxSize).Chunk(c.Text)
	a.index = index.Build(chunks)
	a.metrics.IndexedChunks.Set(float64(a.index.Len()))
	logger.Info("index built",
		zap.Strings("files", c.Files),
		zap.Int("chunks", a.index.Len()),
		zap.Int("vocabulary", a.index.Vocabulary()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return a, nil
}

// generator validates credentials and builds the configured model client.
func (a *app) generator() (domain.Generator, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := llm.New(a.cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrConfig, err)
	}
	return gen, nil
}

func (a *app) answerService(gen domain.Generator) *service.AnswerService {
	return service.NewAnswerService(a.rules, a.index, gen, service.Options{
		Model:     a.cfg.Generation.Model,
		TopK:      a.cfg.Retrieval.TopK,
		MinScore:  a.cfg.Retrieval.MinScore,
		CacheSize: a.cfg.Cache.Size,
		CacheTTL:  time.Duration(a.cfg.Cache.TTLSecs) * time.Second,
	}, a.logger, a.metrics)
}
