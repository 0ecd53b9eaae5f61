package mysql

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/daniel-torresc/emerald-backend-sub002/infrastructure/persistence/mysql/po"
)

// newTestDB opens an isolated in-memory database with the full schema. The
// sqlite driver stands in for MySQL; TranslateError keeps constraint
// violations classifiable the same way.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would get its own empty in-memory database;
	// pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&po.UserPO{},
		&po.InstitutionPO{},
		&po.AccountTypePO{},
		&po.AccountPO{},
		&po.CardPO{},
		&po.AuditLogPO{},
	)
	require.NoError(t, err)

	return db
}
