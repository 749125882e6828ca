package migration_test

import (
	"testing"

	"github.com/shashiranjanraj/merchdesk/pkg/database"
	"github.com/shashiranjanraj/merchdesk/pkg/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error {
	return db.Exec(`CREATE TABLE widgets (id TEXT PRIMARY KEY)`).Error
}

func (createWidgets) Down(db *gorm.DB) error {
	return db.Exec(`DROP TABLE widgets`).Error
}

type createGizmos struct{}

func (createGizmos) Up(db *gorm.DB) error {
	return db.Exec(`CREATE TABLE gizmos (id TEXT PRIMARY KEY)`).Error
}

func (createGizmos) Down(db *gorm.DB) error {
	return db.Exec(`DROP TABLE gizmos`).Error
}

func init() {
	migration.Register("20260301000000_create_widgets", createWidgets{})
	migration.Register("20260301000001_create_gizmos", createGizmos{})
}

func TestRunIsIdempotent(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	runner := migration.New(db)

	require.NoError(t, runner.Run())
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("gizmos"))

	// Second run finds nothing pending and changes nothing.
	require.NoError(t, runner.Run())

	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM merchdesk_migrations`).Scan(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRollbackReversesLastBatch(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	runner := migration.New(db)

	require.NoError(t, runner.Run())
	require.NoError(t, runner.Rollback())

	assert.False(t, db.Migrator().HasTable("widgets"))
	assert.False(t, db.Migrator().HasTable("gizmos"))

	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM merchdesk_migrations`).Scan(&count).Error)
	assert.Equal(t, int64(0), count)

	// Rolling back an empty history is a no-op, not an error.
	require.NoError(t, runner.Rollback())
}
