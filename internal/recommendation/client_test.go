package recommendation

import (
	"context"
	stderrors "errors"
	"testing"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/genai"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeRecs = `[
	{"schemeId":"dr-ntr-vaidya-seva","schemeName":"Dr. NTR Vaidya Seva Scheme","reasoning":"Income below limit."},
	{"schemeName":"Rythu Bharosa Scheme","reasoning":"You are a farmer."},
	{"schemeName":"NTR Bharosa Pension Scheme","reasoning":"You are 62."}
]`

func newClient(t *testing.T, fn genai.GeneratorFunc) *Client {
	return NewClient(fn, catalog.Default(), Options{Temperature: 0.2}, logger.NewTestLogger(t))
}

func fixed(text string, err error) genai.GeneratorFunc {
	return func(context.Context, genai.Request) (string, error) { return text, err }
}

var retiredFarmer = models.Profile{
	Age:          models.IntPtr(62),
	AnnualIncome: models.IntPtr(50000),
	Occupation:   models.OccupationFarmer,
	HouseType:    models.HouseOwned,
}

func TestRecommend_Success(t *testing.T) {
	var captured genai.Request
	c := newClient(t, func(_ context.Context, req genai.Request) (string, error) {
		captured = req
		return "```json\n" + threeRecs + "\n```", nil
	})

	recs, err := c.Recommend(context.Background(), retiredFarmer)
	require.NoError(t, err)
	require.Len(t, recs, RecommendationCount)

	assert.Equal(t, "dr-ntr-vaidya-seva", recs[0].SchemeID)
	assert.Equal(t, "Rythu Bharosa Scheme", recs[1].SchemeName)

	assert.True(t, captured.JSON)
	assert.Equal(t, 1024, captured.MaxTokens)
	assert.Contains(t, captured.Prompt, "Age: 62")
	assert.Contains(t, captured.Prompt, "rythu-bharosa: Rythu Bharosa Scheme")
	assert.Contains(t, captured.Prompt, "do not recommend a housing scheme")
	assert.NotContains(t, captured.Prompt, "Disability:")
}

func TestRecommend_RejectsInvalidPayloads(t *testing.T) {
	tests := map[string]string{
		"two items":   `[{"schemeName":"a","reasoning":"b"},{"schemeName":"c","reasoning":"d"}]`,
		"match score": `[{"schemeName":"a","reasoning":"b","matchScore":0.9},{"schemeName":"c","reasoning":"d"},{"schemeName":"e","reasoning":"f"}]`,
		"wrong types": `[{"schemeName":1,"reasoning":"b"},{"schemeName":"c","reasoning":"d"},{"schemeName":"e","reasoning":"f"}]`,
		"empty name":  `[{"schemeName":"","reasoning":"b"},{"schemeName":"c","reasoning":"d"},{"schemeName":"e","reasoning":"f"}]`,
		"object":      `{"recommendations":[]}`,
		"prose":       `I recommend Rythu Bharosa.`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newClient(t, fixed(payload, nil)).Recommend(context.Background(), retiredFarmer)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeRecommendationServiceFailed, errors.CodeOf(err))
		})
	}
}

func TestRecommend_TransportFailure(t *testing.T) {
	_, err := newClient(t, fixed("", stderrors.New("503 from gateway"))).Recommend(context.Background(), retiredFarmer)
	assert.Equal(t, errors.ErrCodeRecommendationServiceFailed, errors.CodeOf(err))
}

func TestSummarize(t *testing.T) {
	s, _ := catalog.Default().Get("indiramma-housing")

	var prompt string
	c := newClient(t, func(_ context.Context, req genai.Request) (string, error) {
		prompt = req.Prompt
		return `{"summary":"  Free house sites for the homeless poor. "}`, nil
	})

	sum, err := c.Summarize(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "indiramma-housing", sum.SchemeID)
	assert.Equal(t, "Free house sites for the homeless poor.", sum.Summary)
	assert.Contains(t, prompt, "INDIRAMMA Housing Scheme")

	_, err = newClient(t, fixed(`{"summary":""}`, nil)).Summarize(context.Background(), s)
	assert.Equal(t, errors.ErrCodeSummaryServiceFailed, errors.CodeOf(err))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("  [1] "))
}
