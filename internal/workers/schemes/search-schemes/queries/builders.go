package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrEmptyQuery   = errors.New("query text is required")
)

// SchemeQuery is a keyword search over the scheme index.
type SchemeQuery struct {
	Index    string
	Text     string
	Category string
	From     int
	Size     int
}

func BuildQuery(q SchemeQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(buildSchemeSearchQuery(q))
	if err != nil {
		return nil, err
	}

	return &esapi.SearchRequest{
		Index:          []string{q.Index},
		Body:           bytes.NewReader(body),
		From:           &q.From,
		Size:           &q.Size,
		SourceIncludes: []string{"schemeId"},
	}, nil
}

func buildSchemeSearchQuery(q SchemeQuery) map[string]interface{} {
	must := []interface{}{
		map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     strings.TrimSpace(q.Text),
				"fields":    []string{"schemeName^3", "description", "documentsRequired"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
	}

	boolQuery := map[string]interface{}{"must": must}
	if q.Category != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"category": q.Category},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"schemeId": map[string]interface{}{"order": "asc"}},
		},
	}
}
