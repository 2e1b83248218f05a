package linkcheck

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Checker validates the internal links of one site root.
type Checker struct {
	cfg    Config
	logger *slog.Logger
}

// New normalizes and validates cfg and returns a Checker for it.
func New(cfg Config, logger *slog.Logger) (*Checker, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Checker{cfg: cfg, logger: logger}, nil
}

// Config returns the normalized configuration the checker runs with.
func (c *Checker) Config() Config {
	return c.cfg
}

// Run checks every document under the site root. The returned error is
// fatal (missing root, cancellation); per-document problems are logged and
// counted in Summary.SkippedDocuments instead.
func (c *Checker) Run(ctx context.Context) (*Summary, error) {
	logger := c.logger.With(slog.String("site_root", c.cfg.SiteRoot))
	logger.DebugContext(ctx, "Starting link check")

	if err := checkRoot(c.cfg.SiteRoot); err != nil {
		logger.ErrorContext(ctx, "Site root is not usable", slog.Any("error", err))
		return nil, err
	}

	results, err := c.processDocuments(ctx, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Link check aborted", slog.Any("error", err))
		return nil, err
	}

	summary := &Summary{
		SiteRoot: c.cfg.SiteRoot,
		Broken:   []BrokenLink{},
	}
	for _, res := range results {
		summary.Documents++
		if res.err != nil {
			logger.WarnContext(ctx, "Skipping document", slog.String("document", res.path), slog.Any("error", res.err))
			summary.SkippedDocuments++
			continue
		}
		summary.TotalHrefs += res.hrefs
		summary.CheckedLinks += res.checked
		summary.Broken = append(summary.Broken, res.broken...)
	}

	logger.InfoContext(ctx, "Link check complete",
		slog.Group("results",
			slog.Int("documents", summary.Documents),
			slog.Int("skipped_documents", summary.SkippedDocuments),
			slog.Int("total_hrefs", summary.TotalHrefs),
			slog.Int("checked_links", summary.CheckedLinks),
			slog.Int("broken_links", len(summary.Broken)),
		),
	)

	return summary, nil
}

func (c *Checker) checkDocument(ctx context.Context, logger *slog.Logger, job documentJob) documentResult {
	logger = logger.With(slog.String("document", job.path))
	res := documentResult{index: job.index, path: job.path}

	data, err := os.ReadFile(job.path)
	if err != nil {
		res.err = &DocumentError{Path: job.path, Op: "read", Err: err}
		return res
	}

	links, err := extractLinks(ctx, logger, data)
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) {
			docErr.Path = job.path
		}
		res.err = err
		return res
	}

	res.hrefs = len(links)
	for i, href := range links {
		if Classify(href) != Internal {
			continue
		}

		target, ok := Resolve(job.path, c.cfg.SiteRoot, href, c.cfg.IndexFilename)
		if !ok {
			logger.DebugContext(ctx, "Skipping self link", slog.String("href", href))
			continue
		}
		if target.Clamped {
			logger.WarnContext(ctx, "Link climbs above site root, clamped",
				slog.String("href", href),
				slog.String("target", target.Target),
			)
		}

		res.checked++
		if _, err := os.Stat(target.Target); err != nil {
			logger.DebugContext(ctx, "Found broken link",
				slog.String("href", href),
				slog.String("target", target.Target),
				slog.Bool("index_document", target.Index),
			)
			res.broken = append(res.broken, BrokenLink{
				Source:   job.path,
				Href:     href,
				Target:   target.Target,
				Document: job.index,
				Position: i,
			})
		}
	}

	return res
}
