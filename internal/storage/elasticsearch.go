// Package storage содержит выгрузку снимка данных в Elasticsearch/OpenSearch и PostgreSQL.
// Сервер API хранилища не использует: выгрузка запускается отдельной командой indexer.
package storage

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/akozadaev/go_f1_dnf_analytics/internal/models"
)

// DefaultBulkSize - число документов в одном запросе _bulk
const DefaultBulkSize = 500

// RaceResultsMapping - маппинг индекса результатов гонок
//
//go:embed mappings/race_results.json
var RaceResultsMapping string

// ElasticsearchStorage предоставляет методы для работы с Elasticsearch/OpenSearch.
// Массовая индексация идет прямыми HTTP запросами для совместимости с OpenSearch.
type ElasticsearchStorage struct {
	client     *elasticsearch.Client // Официальный клиент Elasticsearch
	index      string                // Имя индекса результатов гонок
	httpClient *http.Client          // HTTP клиент для прямых запросов
	baseURL    string                // Базовый URL Elasticsearch/OpenSearch
}

// NewElasticsearchStorageWithURL создает новый экземпляр ElasticsearchStorage с указанным URL.
func NewElasticsearchStorageWithURL(client *elasticsearch.Client, index string, baseURL string) *ElasticsearchStorage {
	return &ElasticsearchStorage{
		client:     client,
		index:      index,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// CreateIndex создает индекс с заданным маппингом.
// Если индекс уже существует, функция возвращает nil без ошибки.
func (es *ElasticsearchStorage) CreateIndex(ctx context.Context, mappingJSON string) error {
	res, err := es.client.Indices.Exists(
		[]string{es.index},
		es.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = es.client.Indices.Create(
		es.index,
		es.client.Indices.Create.WithBody(strings.NewReader(mappingJSON)),
		es.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error creating index: %s", string(body))
	}

	return nil
}

// Count возвращает число документов в индексе.
func (es *ElasticsearchStorage) Count(ctx context.Context) (int, error) {
	res, err := es.client.Count(
		es.client.Count.WithIndex(es.index),
		es.client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("error counting documents: %s", string(body))
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}
	return result.Count, nil
}

// BulkIndexRaceResults индексирует записи пачками по batchSize документов.
// Идентификатор документа - raceId и driverId, поэтому повторная выгрузка перезаписывает документы.
// Возвращает число проиндексированных документов.
func (es *ElasticsearchStorage) BulkIndexRaceResults(ctx context.Context, records []models.RaceResult, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBulkSize
	}

	indexed := 0
	for _, batch := range lo.Chunk(records, batchSize) {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if err := es.bulk(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)
	}
	return indexed, nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

func (es *ElasticsearchStorage) bulk(ctx context.Context, records []models.RaceResult) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, record := range records {
		meta := map[string]any{
			"index": map[string]any{
				"_index": es.index,
				"_id":    DocumentID(record),
			},
		}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("failed to encode meta: %w", err)
		}
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode race result: %w", err)
		}
	}

	url := fmt.Sprintf("%s/_bulk", es.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	res, err := es.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error bulk indexing: status %d, body: %s", res.StatusCode, string(body))
	}

	var result bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode bulk response: %w", err)
	}
	if !result.Errors {
		return nil
	}

	failed := 0
	firstReason := ""
	for _, item := range result.Items {
		for _, op := range item {
			if op.Status >= http.StatusBadRequest {
				failed++
				if firstReason == "" {
					firstReason = fmt.Sprintf("%s: %s", op.ID, op.Error.Reason)
				}
			}
		}
	}
	return fmt.Errorf("bulk indexing failed for %d of %d documents, first error: %s", failed, len(records), firstReason)
}

// DocumentID возвращает идентификатор документа для записи
func DocumentID(r models.RaceResult) string {
	return r.RaceID + "-" + r.DriverID
}
