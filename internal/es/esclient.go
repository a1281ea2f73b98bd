package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/hdr13/ecommerce-api/internal/config"
	"github.com/hdr13/ecommerce-api/internal/models"
)

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	log.Printf("Connecting to Elasticsearch at: %s", cfg.ES_URL)

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}

	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error response: %s: %s", res.Status(), body)
	}

	return client, nil
}

// IndexProduct upserts a product document keyed by its database id.
func IndexProduct(ctx context.Context, client *elasticsearch.Client, index string, p *models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("es: marshal product: %w", err)
	}

	res, err := client.Index(
		index,
		bytes.NewReader(data),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: index product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es: index product: %s", res.Status())
	}
	return nil
}

func DeleteProduct(ctx context.Context, client *elasticsearch.Client, index string, id uint) error {
	res, err := client.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete product: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es: delete product: %s", res.Status())
	}
	return nil
}
