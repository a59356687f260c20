package queries

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"schemesathi/internal/schemes/catalog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestBuildQuery(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		_, err := BuildQuery(SchemeQuery{Text: "farmer"})
		assert.ErrorIs(t, err, ErrMissingIndex)

		_, err = BuildQuery(SchemeQuery{Index: "schemes", Text: "   "})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("category becomes a term filter", func(t *testing.T) {
		req, err := BuildQuery(SchemeQuery{Index: "schemes", Text: "pension", Category: "General", Size: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{"schemes"}, req.Index)
		assert.Equal(t, 5, *req.Size)

		body := decodeBody(t, req.Body)
		boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
		match := boolQuery["must"].([]interface{})[0].(map[string]interface{})["multi_match"].(map[string]interface{})
		assert.Equal(t, "pension", match["query"])

		filter := boolQuery["filter"].([]interface{})[0].(map[string]interface{})["term"].(map[string]interface{})
		assert.Equal(t, "General", filter["category"])
	})

	t.Run("no filter without category", func(t *testing.T) {
		req, err := BuildQuery(SchemeQuery{Index: "schemes", Text: "pension"})
		require.NoError(t, err)
		boolQuery := decodeBody(t, req.Body)["query"].(map[string]interface{})["bool"].(map[string]interface{})
		assert.NotContains(t, boolQuery, "filter")
	})
}

func TestExecute(t *testing.T) {
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schemes/_search", r.URL.Path)
		io.WriteString(w, `{"took":3,"hits":{"total":{"value":2},"max_score":4.2,"hits":[
			{"_id":"rythu-bharosa","_score":4.2,"_source":{"schemeId":"rythu-bharosa"}},
			{"_id":"annadata-sukhibhava","_score":1.1,"_source":{}}
		]}}`)
	})

	res, err := Execute(context.Background(), es, SchemeQuery{Index: "schemes", Text: "farmer", Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalHits)
	assert.Equal(t, 4.2, res.MaxScore)
	require.Len(t, res.Hits, 2)
	assert.Equal(t, "rythu-bharosa", res.Hits[0].SchemeID)
	assert.Equal(t, "annadata-sukhibhava", res.Hits[1].SchemeID)
}

func TestExecute_ErrorResponse(t *testing.T) {
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"type":"parsing_exception"},"status":400}`)
	})

	_, err := Execute(context.Background(), es, SchemeQuery{Index: "schemes", Text: "farmer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search query failed")
}

func TestEnsureIndex(t *testing.T) {
	t.Run("creates missing index", func(t *testing.T) {
		var created bool
		es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodHead:
				w.WriteHeader(http.StatusNotFound)
			case http.MethodPut:
				created = true
				body := decodeBody(t, r.Body)
				assert.Contains(t, body, "mappings")
				io.WriteString(w, `{"acknowledged":true}`)
			}
		})

		ok, err := EnsureIndex(context.Background(), es, "schemes")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, created)
	})

	t.Run("existing index is left alone", func(t *testing.T) {
		es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
		})

		ok, err := EnsureIndex(context.Background(), es, "schemes")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBulkIndex(t *testing.T) {
	schemes := catalog.Default().All()
	var lines []string
	es := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schemes/_bulk", r.URL.Path)
		scanner := bufio.NewScanner(r.Body)
		scanner.Buffer(make([]byte, 1<<20), 1<<20)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}

		items := make([]string, 0, len(schemes))
		for i, s := range schemes {
			status := 201
			if i == 0 {
				status = 400
			}
			items = append(items, `{"index":{"_id":"`+s.SchemeID+`","status":`+strconv.Itoa(status)+`}}`)
		}
		io.WriteString(w, `{"errors":true,"items":[`+strings.Join(items, ",")+`]}`)
	})

	n, err := BulkIndex(context.Background(), es, "schemes", schemes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), schemes[0].SchemeID)
	assert.Equal(t, len(schemes)-1, n)
	assert.Len(t, lines, 2*len(schemes))
	assert.Contains(t, lines[0], `"_id":"`+schemes[0].SchemeID+`"`)
	assert.Contains(t, lines[1], `"schemeName":`)
}

func TestBulkIndex_Empty(t *testing.T) {
	n, err := BulkIndex(context.Background(), nil, "schemes", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
