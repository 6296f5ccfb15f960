// Команда indexer выгружает загруженный снимок результатов гонок в Elasticsearch
// и, при флаге -postgres, агрегаты сходов по трассам в PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/analytics"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/config"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/dataset"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/logger"
	"github.com/akozadaev/go_f1_dnf_analytics/internal/storage"
)

func main() {
	var (
		batchSize  = flag.Int("batch", storage.DefaultBulkSize, "documents per _bulk request")
		skipES     = flag.Bool("skip-es", false, "do not index race results into Elasticsearch")
		toPostgres = flag.Bool("postgres", false, "also store circuit DNF summaries in PostgreSQL")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging).WithComponent("indexer")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := dataset.NewLoader(cfg.Data, log).Load(ctx)
	if err != nil {
		log.Fatalw("Error loading dataset", "error", err)
	}

	if !*skipES {
		if err := indexRaceResults(ctx, cfg, snap, *batchSize, log); err != nil {
			log.Fatalw("Error indexing race results", "error", err)
		}
	}

	if *toPostgres {
		if err := exportCircuitSummaries(ctx, cfg, snap, log); err != nil {
			log.Fatalw("Error exporting circuit summaries", "error", err)
		}
	}

	log.Info("Indexing completed successfully!")
}

func indexRaceResults(ctx context.Context, cfg *config.Config, snap *dataset.Snapshot, batchSize int, log *logger.Logger) error {
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		return fmt.Errorf("create Elasticsearch client: %w", err)
	}

	esStorage := storage.NewElasticsearchStorageWithURL(esClient, cfg.ElasticsearchIndex, cfg.ElasticsearchURL)
	if err := esStorage.CreateIndex(ctx, storage.RaceResultsMapping); err != nil {
		return err
	}

	log.Infow("Indexing race results", "records", snap.Len(), "index", cfg.ElasticsearchIndex)
	indexed, err := esStorage.BulkIndexRaceResults(ctx, snap.Records(), batchSize)
	if err != nil {
		return fmt.Errorf("indexed %d documents before failure: %w", indexed, err)
	}

	count, err := esStorage.Count(ctx)
	if err != nil {
		log.Warnw("Could not verify document count", "error", err)
		return nil
	}
	log.Infow("Race results indexed", "indexed", indexed, "documents_in_index", count)
	return nil
}

func exportCircuitSummaries(ctx context.Context, cfg *config.Config, snap *dataset.Snapshot, log *logger.Logger) error {
	summaries, err := analytics.CircuitDNF(snap, analytics.CircuitOptions{
		StartersPerRace: cfg.Analytics.StartersPerRace,
		DNFPositionText: cfg.Analytics.DNFPositionText,
	})
	if err != nil {
		return err
	}

	pgStorage, err := storage.NewPostgresStorage(cfg.PostgresDSN())
	if err != nil {
		return err
	}
	defer pgStorage.Close()

	if err := pgStorage.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := pgStorage.SaveCircuitSummaries(ctx, summaries); err != nil {
		return err
	}

	stored, err := pgStorage.ListCircuitSummaries(ctx)
	if err != nil {
		return err
	}
	for i, s := range stored {
		if i == 3 {
			break
		}
		log.Infow("Circuit with most DNFs", "circuit", s.CircuitID, "dnf_count", s.DNFCount, "dnf_percentage", s.DNFPercentage)
	}
	log.Infow("Circuit summaries stored", "circuits", len(stored))
	return nil
}
