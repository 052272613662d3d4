package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"mofachat/internal/domain"
	"mofachat/internal/logger"
	"mofachat/internal/parser"
)

// supported file extensions in the docs directory.
var supportedExtensions = map[string]struct{}{
	".pdf": {},
	".csv": {},
	".txt": {},
}

// Report summarizes an ingestion run.
type Report struct {
	Loaded  int
	Skipped int
}

// Ingester loads the document corpus at startup: files from a docs
// directory plus an optional pre-chunked JSONL corpus. Documents are
// parsed and embedded concurrently; store writes are serialized by the
// store itself. One bad document never aborts the batch.
type Ingester struct {
	parser      *parser.Parser
	embedder    domain.Embedder
	store       domain.DocumentStore
	docsDir     string
	corpusPath  string
	concurrency int
}

// New creates an ingester over the given collaborators.
func New(p *parser.Parser, embedder domain.Embedder, store domain.DocumentStore, docsDir, corpusPath string, concurrency int) *Ingester {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Ingester{
		parser:      p,
		embedder:    embedder,
		store:       store,
		docsDir:     docsDir,
		corpusPath:  corpusPath,
		concurrency: concurrency,
	}
}

// Run ingests the docs directory and, when configured, the JSONL
// corpus. The directory is created if absent and seeded with one
// bundled document on first run.
func (ing *Ingester) Run(ctx context.Context) (Report, error) {
	var report Report

	paths, err := ing.scanDocsDir()
	if err != nil {
		return report, err
	}
	fileReport := ing.ingestFiles(ctx, paths)
	report.Loaded += fileReport.Loaded
	report.Skipped += fileReport.Skipped

	if ing.corpusPath != "" {
		corpusReport, err := ing.ingestCorpus(ctx)
		if err != nil {
			return report, err
		}
		report.Loaded += corpusReport.Loaded
		report.Skipped += corpusReport.Skipped
	}
	logger.Info("ingest: loaded %d documents, skipped %d", report.Loaded, report.Skipped)
	return report, nil
}

// scanDocsDir lists supported files, creating and seeding the
// directory when needed.
func (ing *Ingester) scanDocsDir() ([]string, error) {
	if err := os.MkdirAll(ing.docsDir, 0o755); err != nil {
		return nil, fmt.Errorf("ingest: create docs dir: %w", err)
	}
	if err := seedIfEmpty(ing.docsDir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(ing.docsDir)
	if err != nil {
		return nil, fmt.Errorf("ingest: read docs dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := supportedExtensions[ext]; ok {
			paths = append(paths, filepath.Join(ing.docsDir, e.Name()))
		}
	}
	return paths, nil
}

// ingestFiles parses and embeds each file concurrently. Failures are
// logged and counted, never fatal.
func (ing *Ingester) ingestFiles(ctx context.Context, paths []string) Report {
	var (
		g, gctx = errgroup.WithContext(ctx)
		results = make(chan bool, len(paths))
	)
	g.SetLimit(ing.concurrency)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ing.ingestFile(gctx, path); err != nil {
				logger.Error("ingest: skipping %s: %v", filepath.Base(path), err)
				results <- false
				return nil
			}
			results <- true
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	var report Report
	for ok := range results {
		if ok {
			report.Loaded++
		} else {
			report.Skipped++
		}
	}
	return report
}

func (ing *Ingester) ingestFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := ing.parser.Parse(f, filepath.Base(path), "")
	if err != nil {
		return err
	}
	return ing.embedAndStore(ctx, doc)
}

// ingestCorpus reads newline-delimited JSON chunk records. Bad lines
// are logged and skipped.
func (ing *Ingester) ingestCorpus(ctx context.Context) (Report, error) {
	var report Report
	f, err := os.Open(ing.corpusPath)
	if err != nil {
		return report, fmt.Errorf("ingest: open corpus: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec parser.ChunkRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			logger.Error("ingest: corpus line %d: %v", line, err)
			report.Skipped++
			continue
		}
		doc, err := ing.parser.ParseChunk(rec)
		if err != nil {
			logger.Error("ingest: corpus line %d: %v", line, err)
			report.Skipped++
			continue
		}
		if err := ing.embedAndStore(ctx, doc); err != nil {
			logger.Error("ingest: corpus line %d: %v", line, err)
			report.Skipped++
			continue
		}
		report.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("ingest: read corpus: %w", err)
	}
	return report, nil
}

func (ing *Ingester) embedAndStore(ctx context.Context, doc *domain.ProcessedDocument) error {
	vector, err := ing.embedder.Embed(ctx, doc.Content)
	if err != nil && !errors.Is(err, domain.ErrEmptyEmbedding) {
		return err
	}
	// An empty embedding at ingestion time is stored as-is; it simply
	// never matches a query.
	return ing.store.Insert(*doc, vector)
}
