package goosehelper

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// upContext подменяется в тестах
var upContext = goose.UpContext

// MigrateUp применяет миграции из директории dir файловой системы migrations
func MigrateUp(ctx context.Context, db *sql.DB, migrations fs.FS, dir string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := upContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
