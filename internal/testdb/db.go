package testdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkwhisk/cookbook/internal/database"
)

// SetupTestDB creates a throwaway sqlite database under the test's temp
// directory with the full schema migrated. The file goes away with the
// temp dir; no separate cleanup is needed.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cookbook-test.db")
	db, err := database.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
