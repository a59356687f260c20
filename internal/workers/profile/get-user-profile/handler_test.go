package getuserprofile

import (
	"context"
	"testing"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/store/profile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT profile FROM user_profiles WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"profile"}).
			AddRow([]byte(`{"age":"44","casteCategory":"bc","gender":"female"}`)))

	h := NewHandler(LoadConfig(), profile.NewPostgresStore(db), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{UserID: "u-1"})
	require.NoError(t, err)

	assert.True(t, out.Found)
	assert.Equal(t, 44, *out.Profile.Age)
	assert.Equal(t, models.CategoryBC, out.Profile.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NotFoundIsNotAnError(t *testing.T) {
	h := NewHandler(LoadConfig(), profile.NewMemoryStore(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{UserID: "new-user"})
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Nil(t, out.Profile)
}

func TestHandler_Execute_RequiresUser(t *testing.T) {
	h := NewHandler(LoadConfig(), profile.NewMemoryStore(), logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{UserID: " "})
	assert.Equal(t, errors.ErrCodeNotAuthenticated, errors.CodeOf(err))
}
