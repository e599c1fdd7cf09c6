package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"i18nextract/internal/adapter"
	"i18nextract/internal/catalog"
	"i18nextract/internal/config"
	"i18nextract/internal/extract"
	"i18nextract/internal/filewalker"
	"i18nextract/internal/importer"
	"i18nextract/internal/keystore"
	"i18nextract/internal/textutil"
	"i18nextract/internal/translations"
	"i18nextract/internal/worker"
)

// Run performs one extraction: validate, scan, import, persist. Nothing is
// read or written when the configuration is invalid.
func Run(ctx context.Context, cfg *config.Config) (*translations.Set, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	exts, err := cfg.Extensions()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cat := catalog.New(exts...)
	for _, name := range cat.UnknownOverrides() {
		log.Warn().Str("pattern", name).Msg("customRegex override names no pattern, it will never run")
	}

	engine, err := extract.NewEngine(cat, extract.Context{
		Delimiters: cfg.Interpolation,
		KeyAsText:  cfg.KeyAsText,
	})
	if err != nil {
		return nil, err
	}

	out, err := adapter.New(cfg.Adapter)
	if err != nil {
		return nil, err
	}
	if err := out.Init(cfg.AdapterParams()); err != nil {
		return nil, fmt.Errorf("init %s adapter: %w", cfg.Adapter, err)
	}

	files, err := filewalker.Expand(cfg.Src)
	if err != nil {
		return nil, fmt.Errorf("expand src: %w", err)
	}

	store, err := extractFiles(ctx, engine, files, cfg.Workers)
	if err != nil {
		return nil, err
	}

	if len(cfg.JSONSrc) > 0 {
		docs, err := filewalker.Expand(cfg.JSONSrc)
		if err != nil {
			return nil, fmt.Errorf("expand jsonSrc: %w", err)
		}
		im := importer.New(cfg.JSONSrcName...)
		added, err := im.ImportFiles(docs, store)
		if err != nil {
			return nil, fmt.Errorf("import labels: %w", err)
		}
		log.Info().Int("documents", len(docs)).Strs("fields", im.Fields()).Int("added", added).Msg("Imported labels")
	}

	set := translations.New(store, cfg.TranslationParams())
	if err := out.Persist(ctx, set); err != nil {
		return nil, fmt.Errorf("persist translations: %w", err)
	}

	log.Info().
		Int("files", len(files)).
		Int("keys", set.Len()).
		Strs("lang", cfg.Lang).
		Dur("elapsed", time.Since(start)).
		Msg("Extraction complete")
	return set, nil
}

// extractFiles extracts every file into its own store, then merges the
// stores in file order so later files win whatever the worker count.
func extractFiles(ctx context.Context, engine *extract.Engine, files []string, workers int) (*keystore.Store, error) {
	pool := worker.NewPool(workers, func(ctx context.Context, path string) (*keystore.Store, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		s := keystore.New()
		n := engine.ExtractInto(string(data), s)
		log.Debug().Str("file", path).Int("entries", n).Int("keys", s.Len()).Msg("Extracted file")
		for _, k := range s.Keys() {
			log.Trace().Str("file", path).Str("key", textutil.Truncate(k, 60)).Msg("Key")
		}
		return s, nil
	})

	log.Debug().Int("files", len(files)).Int("workers", pool.Workers()).Msg("Extracting files")
	tasks := pool.Execute(ctx, files)
	if err := worker.FirstError(tasks); err != nil {
		return nil, fmt.Errorf("extract files: %w", err)
	}

	store := keystore.New()
	for _, t := range tasks {
		store.Merge(t.Result)
	}
	return store, nil
}
