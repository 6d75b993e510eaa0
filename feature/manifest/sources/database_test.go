package sources

import (
	"context"
	"errors"
	"testing"

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

func TestDatabaseSource_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `install_manifests` WHERE name = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "body"}).AddRow(1, "higurashi", `{"mods":[]}`))

		src := NewDatabaseSource(db, "higurashi")
		data, err := src.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"mods":[]}`, string(data))
		assert.Equal(t, "install_manifests/higurashi", src.Describe())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `install_manifests`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "body"}))

		_, err := NewDatabaseSource(db, "absent").Read(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Query Fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SELECT \\* FROM `install_manifests`").WillReturnError(errors.New("connection lost"))

		_, err := NewDatabaseSource(db, "higurashi").Read(ctx)
		assert.ErrorContains(t, err, "connection lost")
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestListStored(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT `name` FROM `install_manifests` ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("higurashi").AddRow("umineko"))

	names, err := ListStored(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"higurashi", "umineko"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
