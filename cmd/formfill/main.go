package main

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/formfill-labs/formfill-cli/internal/adapters/driven/config/file"
	"github.com/formfill-labs/formfill-cli/internal/adapters/driven/embedding/hashing"
	"github.com/formfill-labs/formfill-cli/internal/adapters/driven/index/memory"
	"github.com/formfill-labs/formfill-cli/internal/adapters/driven/storage/sqlite"
	"github.com/formfill-labs/formfill-cli/internal/adapters/driven/suggest"
	"github.com/formfill-labs/formfill-cli/internal/adapters/driving/cli"
	"github.com/formfill-labs/formfill-cli/internal/core/services"
	"github.com/formfill-labs/formfill-cli/internal/logger"
	"github.com/formfill-labs/formfill-cli/internal/normalisers/plaintext"
	"github.com/formfill-labs/formfill-cli/internal/postprocessors/chunker"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer store.Close()

	embedder := hashing.New(
		hashing.WithDimensions(cfg.GetInt("embedding.dimensions")),
	)

	indexOpts := []memory.Option{memory.WithDimensions(embedder.Dimensions())}
	if _, ok := cfg.Get("index.min_similarity"); ok {
		indexOpts = append(indexOpts, memory.WithMinSimilarity(cfg.GetFloat("index.min_similarity")))
	}
	index := memory.New(indexOpts...)

	chunkerOpts := []chunker.Option{chunker.WithTargetSize(cfg.GetInt("chunker.target_size"))}
	if _, ok := cfg.Get("chunker.overlap"); ok {
		chunkerOpts = append(chunkerOpts, chunker.WithOverlap(cfg.GetInt("chunker.overlap")))
	}

	ingestService := services.NewIngestService(
		store,
		index,
		embedder,
		chunker.New(chunkerOpts...),
		plaintext.New(),
		services.WithMaxDocumentSize(cfg.GetInt("ingest.max_document_size")),
		services.WithMaxChunks(cfg.GetInt("ingest.max_chunks")),
	)

	// A failed rebuild means the index does not reflect the store;
	// serving searches against it would silently return garbage.
	if _, err := ingestService.Rebuild(context.Background()); err != nil {
		return fmt.Errorf("rebuild index from %s: %w", store.Path(), err)
	}

	searchService := services.NewSearchService(index, embedder)
	fieldService := services.NewFieldService(searchService, suggest.NewGroup(
		suggest.NewLocalProvider(store),
		suggest.NewSnippetProvider(),
	))

	cli.SetVersion(version)
	cli.SetServices(ingestService, searchService, fieldService)

	if err := cli.Execute(); err != nil {
		logger.Debug("Command failed: %v", err)
		return err
	}
	return nil
}
