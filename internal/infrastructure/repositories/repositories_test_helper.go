package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		google_auth_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		name TEXT,
		created_at DATETIME
	);`)
}

func createApplicationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		domain TEXT,
		created_at DATETIME
	);`)
}

func createAPIKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id TEXT PRIMARY KEY,
		application_id TEXT NOT NULL UNIQUE,
		api_key TEXT NOT NULL UNIQUE,
		is_revoked BOOLEAN NOT NULL DEFAULT 0,
		expires_at DATETIME,
		created_at DATETIME
	);`)
}

func createAnalyticsEventTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE analytics_events (
		id TEXT PRIMARY KEY,
		application_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		user_id TEXT,
		url TEXT,
		referrer TEXT,
		device TEXT,
		ip_address TEXT,
		timestamp DATETIME,
		metadata TEXT
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	createUserTable(t, db)
	createApplicationTable(t, db)
	createAPIKeyTable(t, db)
	createAnalyticsEventTable(t, db)
}
