package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionDeniedCarriesDiagnostics(t *testing.T) {
	payload := map[string]interface{}{"age": 40}
	err := NewPermissionDeniedError("user_profiles/u-1", "write", payload, stderrors.New("pq: permission denied"))

	assert.Equal(t, ErrCodePermissionDenied, err.Code)
	assert.False(t, err.Retryable)
	assert.Equal(t, "user_profiles/u-1", err.Metadata["path"])
	assert.Equal(t, "write", err.Metadata["operation"])
	assert.Equal(t, payload, err.Metadata["payload"])
	assert.NotContains(t, err.Message, "pq")
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("save profile: %w", NewSchemeNotFoundError("missing"))

	assert.Equal(t, ErrCodeSchemeNotFound, CodeOf(wrapped))
	assert.True(t, HasCode(wrapped, ErrCodeSchemeNotFound))
	assert.True(t, stderrors.Is(wrapped, &StandardError{Code: ErrCodeSchemeNotFound}))
	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
}

func TestAsStandardError(t *testing.T) {
	assert.Nil(t, AsStandardError(nil))

	internal := AsStandardError(stderrors.New("boom"))
	require.NotNil(t, internal)
	assert.Equal(t, ErrCodeInternal, internal.Code)

	orig := NewValidationError("age must be >= 0")
	assert.Same(t, orig, AsStandardError(fmt.Errorf("wrap: %w", orig)))
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("retryable code keeps retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewDatabaseWriteFailedError("save", stderrors.New("conn reset")))
		assert.Equal(t, "DATABASE_WRITE_FAILED", bpmn.Code)
		assert.Equal(t, 3, bpmn.Retries)
		assert.True(t, bpmn.Retryable)
	})

	t.Run("business code never retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewDuplicateApplicationError("u-1", "rythu-bharosa"))
		assert.Equal(t, 0, bpmn.Retries)
		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "DUPLICATE_APPLICATION", vars["errorCode"])
		assert.Contains(t, vars, "timestamp")
	})

	t.Run("metadata becomes error variables", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewPermissionDeniedError("user_profiles/u-2", "read", nil, nil))
		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "user_profiles/u-2", vars["path"])
		assert.Equal(t, "read", vars["operation"])
	})
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeNotAuthenticated:            "AUTH",
		ErrCodePermissionDenied:            "AUTH",
		ErrCodeDatabaseQueryFailed:         "STORAGE",
		ErrCodeCacheFailed:                 "STORAGE",
		ErrCodeSearchTimeout:               "SEARCH",
		ErrCodeRecommendationServiceFailed: "AI",
		ErrCodeSchemeNotFound:              "NOT_FOUND",
		ErrCodeProfileRequired:             "NOT_FOUND",
		ErrCodeInvalidStatusTransition:     "VALIDATION",
		ErrCodeInternal:                    "OTHER",
	}
	for code, want := range tests {
		assert.Equal(t, want, GetErrorCategory(code), string(code))
	}
}

func TestReportContextOutlivesExpiredHandler(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-parent.Done()

	ctx, done := reportContext(parent)
	defer done()

	assert.NoError(t, ctx.Err())
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.True(t, deadline.After(time.Now()))
}
