package snapshot

import (
	"context"
	"errors"
	"testing"

	"collection-prep/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestDatabaseSink_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	sink := NewDatabaseSink(db)
	require.NoError(t, sink.Migrate(ctx))

	first := NewRun("alice", NewDataset(sampleResult()))
	second := NewRun("alice", NewDataset(sampleResult()))
	require.NoError(t, sink.Write(ctx, first))
	require.NoError(t, sink.Write(ctx, second))

	var snap SnapshotModel
	require.NoError(t, db.First(&snap, "run_id = ?", first.ID).Error)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, 1, snap.Games)
	assert.Equal(t, 2, snap.Entities)

	var entities []EntityModel
	require.NoError(t, db.Where("run_id = ?", second.ID).Order("entity_id").Find(&entities).Error)
	require.Len(t, entities, 2)
	assert.Equal(t, "KOSMOS", entities[0].Name)

	var rels int64
	require.NoError(t, db.Model(&RelationshipModel{}).Count(&rels).Error)
	assert.Equal(t, int64(4), rels)
}

func TestDatabaseSink_RollsBackOnFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `snapshots`").WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := NewDatabaseSink(db).Write(context.Background(), NewRun("alice", NewDataset(sampleResult())))
	assert.ErrorContains(t, err, "insert snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}
