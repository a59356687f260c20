package queries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"schemesathi/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// IndexMapping types name and description as text and everything used for filtering or sorting as keyword.
const IndexMapping = `{
  "settings": {"number_of_shards": 1, "number_of_replicas": 0},
  "mappings": {
    "properties": {
      "schemeId":          {"type": "keyword"},
      "schemeName":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":       {"type": "text"},
      "documentsRequired": {"type": "text"},
      "category":          {"type": "keyword"},
      "benefitAmount":     {"type": "long"},
      "incomeLimit":       {"type": "long"}
    }
  }
}`

// Document is the indexed projection of a scheme.
type Document struct {
	SchemeID          string   `json:"schemeId"`
	SchemeName        string   `json:"schemeName"`
	Description       string   `json:"description"`
	DocumentsRequired []string `json:"documentsRequired"`
	Category          string   `json:"category"`
	BenefitAmount     int      `json:"benefitAmount"`
	IncomeLimit       int      `json:"incomeLimit"`
}

func NewDocument(s models.Scheme) Document {
	return Document{
		SchemeID:          s.SchemeID,
		SchemeName:        s.SchemeName,
		Description:       s.Description,
		DocumentsRequired: s.DocumentsRequired,
		Category:          string(s.Category),
		BenefitAmount:     s.BenefitAmount,
		IncomeLimit:       s.EligibilityCriteria.IncomeLimit,
	}
}

// EnsureIndex creates index with IndexMapping unless it exists. It reports whether it created it.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index string) (bool, error) {
	if index == "" {
		return false, ErrMissingIndex
	}

	exists, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return false, nil
	}
	if exists.StatusCode != http.StatusNotFound {
		return false, fmt.Errorf("check index %s: %s", index, exists.Status())
	}

	res, err := esapi.IndicesCreateRequest{
		Index: index,
		Body:  strings.NewReader(IndexMapping),
	}.Do(ctx, es)
	if err != nil {
		return false, fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return false, fmt.Errorf("create index %s: %s", index, res.String())
	}
	return true, nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// BulkIndex upserts every scheme under its id and refreshes the index.
func BulkIndex(ctx context.Context, es *elasticsearch.Client, index string, schemes []models.Scheme) (int, error) {
	if index == "" {
		return 0, ErrMissingIndex
	}
	if len(schemes) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, s := range schemes {
		meta := map[string]interface{}{"index": map[string]interface{}{"_id": s.SchemeID}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(NewDocument(s)); err != nil {
			return 0, err
		}
	}

	res, err := esapi.BulkRequest{
		Index:   index,
		Body:    &buf,
		Refresh: "true",
	}.Do(ctx, es)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk index: %s", res.String())
	}

	var r bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	var failed []string
	for _, item := range r.Items {
		for _, result := range item {
			if result.Error != nil || result.Status >= 300 {
				failed = append(failed, result.ID)
				continue
			}
			indexed++
		}
	}
	if len(failed) > 0 {
		return indexed, fmt.Errorf("bulk index: %d documents failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return indexed, nil
}
