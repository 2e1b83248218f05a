package linkcheck

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
)

// checkRoot fails with ErrRootNotFound unless root is an existing directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return nil
}

// walkDocuments yields the absolute path of every HTML document under
// cfg.SiteRoot in lexical order. Directories that cannot be read are yielded
// as a *DocumentError and skipped. The sequence can be ranged over once.
func walkDocuments(ctx context.Context, logger *slog.Logger, cfg Config) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		logger.DebugContext(ctx, "Starting to walk site root", slog.String("root", cfg.SiteRoot))

		found := 0
		_ = filepath.WalkDir(cfg.SiteRoot, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				if path == cfg.SiteRoot {
					yield("", fmt.Errorf("%w: %v", ErrRootNotFound, err))
					return filepath.SkipAll
				}
				if !yield("", &DocumentError{Path: path, Op: "walk", Err: err}) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !cfg.isHTML(d.Name()) {
				return nil
			}

			if rel, relErr := filepath.Rel(cfg.SiteRoot, path); relErr == nil && cfg.excluded(rel) {
				logger.DebugContext(ctx, "Skipping excluded document", slog.String("path", rel))
				return nil
			}

			found++
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})

		logger.DebugContext(ctx, "Finished walking site root", slog.Int("documents_found", found))
	}
}
