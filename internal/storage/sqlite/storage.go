package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/GustavoCaso/finbot/internal/config"
)

// DB persists ledger snapshots in SQLite tables.
type DB struct {
	db *sql.DB
}

func New(dbConfig config.DBConfig) (*DB, error) {
	db, err := sql.Open("sqlite3", dbConfig.Source)
	if err != nil {
		return nil, err
	}

	applyPoolSettings(db, dbConfig)

	for _, p := range pragmasFor(dbConfig) {
		if _, err = db.ExecContext(context.Background(), fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set %s: %w", p.name, err)
		}
	}

	return &DB{db: db}, nil
}

func applyPoolSettings(db *sql.DB, conf config.DBConfig) {
	if conf.MaxOpenConns > 0 {
		db.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		db.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(conf.ConnMaxLifetime)
	}
	if conf.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(conf.ConnMaxIdleTime)
	}
}

type pragma struct {
	name  string
	value string
}

// pragmasFor lists the PRAGMA statements conf asks for. Unset values keep
// the SQLite default.
func pragmasFor(conf config.DBConfig) []pragma {
	var pragmas []pragma

	add := func(name, value string) {
		if value != "" {
			pragmas = append(pragmas, pragma{name: name, value: value})
		}
	}
	positive := func(name string, value int) {
		if value > 0 {
			add(name, strconv.Itoa(value))
		}
	}

	add("journal_mode", conf.JournalMode)
	add("synchronous", conf.Synchronous)
	add("temp_store", conf.TempStore)
	if conf.CacheSize != 0 {
		add("cache_size", strconv.Itoa(conf.CacheSize))
	}
	positive("busy_timeout", conf.BusyTimeout)
	positive("wal_autocheckpoint", conf.WALAutocheckpoint)

	return pragmas
}

func (s *DB) Close() error {
	return s.db.Close()
}
