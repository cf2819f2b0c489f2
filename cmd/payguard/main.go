// Command payguard is the compliance-aware transfer validation CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	configfile "github.com/fincomply/payguard/internal/adapters/driven/config/file"
	"github.com/fincomply/payguard/internal/adapters/driven/embedding/ollama"
	"github.com/fincomply/payguard/internal/adapters/driven/embedding/openai"
	ledgersqlite "github.com/fincomply/payguard/internal/adapters/driven/ledger/sqlite"
	"github.com/fincomply/payguard/internal/adapters/driven/screening/mockapi"
	"github.com/fincomply/payguard/internal/adapters/driven/vector/flat"
	"github.com/fincomply/payguard/internal/adapters/driving/cli"
	"github.com/fincomply/payguard/internal/core/ports/driven"
	"github.com/fincomply/payguard/internal/core/services"
	"github.com/fincomply/payguard/internal/extractor"
	"github.com/fincomply/payguard/internal/logger"
	"github.com/fincomply/payguard/internal/normalisers"
	"github.com/fincomply/payguard/internal/postprocessors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "payguard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional; the API key usually lives here during development.
	_ = godotenv.Load()

	cfgPath := os.Getenv("PAYGUARD_CONFIG")
	if cfgPath == "" {
		var err error
		cfgPath, err = configfile.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := configfile.Load(cfgPath)
	if err != nil {
		return err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".payguard")
	}

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	index, err := flat.New(embedder.Dimensions(), filepath.Join(dataDir, "vectordb"))
	if err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}
	defer index.Close()

	if restored, err := index.Load(); err != nil {
		return fmt.Errorf("load vector index: %w", err)
	} else if restored {
		logger.Debug("Restored vector index: %d vectors", index.Stats().TotalDocuments)
	}

	ledger, err := ledgersqlite.NewLedger(dataDir)
	if err != nil {
		return fmt.Errorf("open transfer ledger: %w", err)
	}
	defer ledger.Close()

	screenerOpts := []mockapi.Option{}
	if len(cfg.Screening.SanctionedCountries) > 0 {
		screenerOpts = append(screenerOpts, mockapi.WithCountries(cfg.Screening.SanctionedCountries))
	}
	if len(cfg.Screening.SanctionedNames) > 0 {
		screenerOpts = append(screenerOpts, mockapi.WithNames(cfg.Screening.SanctionedNames))
	}

	svc := services.New(
		services.Config{
			PerTransactionLimit: cfg.Limits.PerTransaction,
			TopK:                cfg.Retrieval.TopK,
			TopicTimeout:        cfg.Retrieval.TopicTimeout(),
		},
		services.Deps{
			Normalisers: normalisers.Default(),
			Pipeline:    postprocessors.Default(cfg.Chunking.Size, cfg.Chunking.Overlap),
			Extractor:   extractor.New(),
			Embedder:    embedder,
			Index:       index,
			Ledger:      ledger,
			Screener:    mockapi.New(screenerOpts...),
		},
	)

	cli.SetComplianceService(svc)
	return cli.Execute()
}

// newEmbedder builds the embedding service named by the config.
func newEmbedder(cfg configfile.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			Dimensions:        cfg.Dimensions,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            os.Getenv(cfg.APIKeyEnv),
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			Dimensions:        cfg.Dimensions,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
