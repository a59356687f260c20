package recommendation

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/store/reccache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecommender struct {
	mock.Mock
}

func (m *mockRecommender) Recommend(ctx context.Context, p models.Profile) ([]models.Recommendation, error) {
	args := m.Called(ctx, p)
	recs, _ := args.Get(0).([]models.Recommendation)
	return recs, args.Error(1)
}

func newCache(t *testing.T) *reccache.Cache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return reccache.New(client, time.Hour)
}

var recs = []models.Recommendation{
	{SchemeName: "Rythu Bharosa Scheme", Reasoning: "farmer"},
	{SchemeName: "NTR Bharosa Pension Scheme", Reasoning: "62"},
	{SchemeName: "Dr. NTR Vaidya Seva Scheme", Reasoning: "health"},
}

func TestService_FetchUsesCache(t *testing.T) {
	rec := new(mockRecommender)
	rec.On("Recommend", mock.Anything, retiredFarmer).Return(recs, nil).Once()

	svc := NewService(rec, newCache(t), logger.NewTestLogger(t))
	ctx := context.Background()

	first := svc.Fetch(ctx, "u-1", retiredFarmer)
	assert.Equal(t, models.RecommendationSucceeded, first.Status)

	second := svc.Fetch(ctx, "u-1", retiredFarmer)
	assert.Equal(t, models.RecommendationCached, second.Status)
	assert.Equal(t, recs, second.Recommendations)

	rec.AssertExpectations(t)
}

func TestService_RefreshInvalidates(t *testing.T) {
	rec := new(mockRecommender)
	rec.On("Recommend", mock.Anything, mock.Anything).Return(recs, nil).Twice()

	svc := NewService(rec, newCache(t), logger.NewTestLogger(t))
	ctx := context.Background()

	svc.Fetch(ctx, "u-1", retiredFarmer)
	res := svc.Refresh(ctx, "u-1", retiredFarmer)

	assert.Equal(t, models.RecommendationSucceeded, res.Status)
	rec.AssertExpectations(t)
}

func TestService_FailureIsReportedNotReturned(t *testing.T) {
	rec := new(mockRecommender)
	rec.On("Recommend", mock.Anything, mock.Anything).
		Return(nil, errors.NewRecommendationServiceError(stderrors.New("quota exceeded")))

	svc := NewService(rec, newCache(t), logger.NewTestLogger(t))
	res := svc.Fetch(context.Background(), "u-1", retiredFarmer)

	assert.Equal(t, models.RecommendationFailed, res.Status)
	assert.Nil(t, res.Recommendations)
	assert.Equal(t, models.RecommendationFailedNotice, res.Notice)
	require.Error(t, res.Err)

	assert.Nil(t, svc.Cached(context.Background(), "u-1", retiredFarmer))
}

func TestService_NoRecommenderSkips(t *testing.T) {
	svc := NewService(nil, nil, logger.NewTestLogger(t))
	res := svc.Fetch(context.Background(), "u-1", retiredFarmer)
	assert.Equal(t, models.RecommendationSkipped, res.Status)
}
