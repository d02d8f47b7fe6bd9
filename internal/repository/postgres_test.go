package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"task-manager/internal/log"
	"task-manager/internal/testutil"
)

func TestTaskRepositoryPostgres(t *testing.T) {
	pg := testutil.StartPostgres(t)

	db, err := NewDB(pg.ConnStr, log.Discard())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	runStoreSuite(t, func(t *testing.T) *gorm.DB {
		require.NoError(t, db.Exec("TRUNCATE TABLE tasks RESTART IDENTITY").Error)
		return db
	})
}
