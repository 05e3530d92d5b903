package store

import (
	"testing"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoragesFromDB_WiresEveryRepository(t *testing.T) {
	db, mock := newTestDB(t)

	s := newStoragesFromDB(db, logger.Nop())

	assert.Same(t, db, s.Transactor)
	assert.NotNil(t, s.UserRepository)
	assert.NotNil(t, s.LoginAttemptRepository)
	assert.NotNil(t, s.MovieRepository)
	assert.NotNil(t, s.EpisodeRepository)
	assert.NotNil(t, s.PurchaseRepository)
	assert.NotNil(t, s.CommentRepository)

	mock.ExpectClose()
	require.NoError(t, s.Close())
}
