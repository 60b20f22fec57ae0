// Package gormdbtest fornece bases de dados SQLite em memória para testes.
package gormdbtest

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb"
)

// TB é o subconjunto de testing.TB usado aqui (também satisfeito por GinkgoT()).
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Cleanup(func())
}

// New abre uma base SQLite em memória isolada, já migrada.
// A base é fechada no fim do teste.
func New(t TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), gormdb.NewGormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// SQLite em memória não suporta escritas concorrentes
	sqlDB.SetMaxOpenConns(1)

	if err := gormdb.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
