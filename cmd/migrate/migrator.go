package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
	seedFile         = "seed.sql"
	upSuffix         = ".up.sql"
)

// migrationDB は migrator が使う DB 操作（*pgxpool.Pool が満たす）
type migrationDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type migrator struct {
	db  migrationDB
	dir string
}

// upFiles は .up.sql ファイル名をソート済みで返す
func (m *migrator) upFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *migrator) execFile(ctx context.Context, name string) error {
	sql, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := m.db.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	return nil
}

func (m *migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

// isApplied は schema_migrations に name が記録済みかを返す。
// 確認できない場合はエラー（未適用扱いにして再適用しない）。
func (m *migrator) isApplied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", name, err)
	}
	return exists, nil
}

func (m *migrator) markApplied(ctx context.Context, name string) error {
	if _, err := m.db.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	return nil
}

// runIncremental は未適用の .up.sql を順番に適用する
func (m *migrator) runIncremental(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, upSuffix)
		done, err := m.isApplied(ctx, name)
		if err != nil {
			return err
		}
		if done {
			continue
		}
		if err := m.execFile(ctx, filename); err != nil {
			return err
		}
		if err := m.markApplied(ctx, name); err != nil {
			return err
		}
		applied++
		slog.Info("migration completed", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

// runDropAll は全テーブルを DROP する
func (m *migrator) runDropAll(ctx context.Context) error {
	slog.Info("dropping all tables")
	if err := m.execFile(ctx, dropAllFile); err != nil {
		return err
	}
	slog.Info("all tables dropped")
	return nil
}

// runConsolidated は集約スキーマで再作成し、全マイグレーションを適用済みとして記録する
func (m *migrator) runConsolidated(ctx context.Context) error {
	slog.Info("applying consolidated schema")
	if err := m.execFile(ctx, consolidatedFile); err != nil {
		return err
	}
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}
	for _, filename := range files {
		if err := m.markApplied(ctx, strings.TrimSuffix(filename, upSuffix)); err != nil {
			return err
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
	return nil
}

// runSeed は料金カタログと係数の初期データを投入する
func (m *migrator) runSeed(ctx context.Context) error {
	if err := m.execFile(ctx, seedFile); err != nil {
		return err
	}
	var rates int
	if err := m.db.QueryRow(ctx, "SELECT COUNT(*) FROM rate_lines").Scan(&rates); err != nil {
		slog.Error("seed applied but rate_lines count failed", "error", err)
		return fmt.Errorf("count rate_lines: %w", err)
	}
	slog.Info("seed applied", "rate_lines", rates)
	return nil
}
