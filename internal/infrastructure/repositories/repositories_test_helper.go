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

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_on DATETIME NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE logins (
		login_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER UNIQUE NOT NULL,
		password TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_on DATETIME NOT NULL,
		created_by INTEGER,
		updated_on DATETIME NOT NULL,
		updated_by INTEGER
	);`)
}

func createBotTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_bots (
		assign_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		bot_id TEXT NOT NULL,
		bot_fingerprint TEXT NOT NULL UNIQUE,
		allow_admin_control BOOLEAN NOT NULL DEFAULT 0,
		validity DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_on DATETIME NOT NULL,
		created_by INTEGER,
		updated_on DATETIME NOT NULL,
		updated_by INTEGER
	);`)
	mustExec(t, db, `CREATE TABLE bot_behaviours (
		bot_behav_id INTEGER PRIMARY KEY AUTOINCREMENT,
		assign_id INTEGER NOT NULL UNIQUE,
		bot_state BOOLEAN NOT NULL DEFAULT 0,
		hard_stop_all_trades BOOLEAN NOT NULL DEFAULT 0,
		listen_to_common_commander BOOLEAN NOT NULL DEFAULT 0,
		news_based_start_stop BOOLEAN NOT NULL DEFAULT 0,
		refresh_data_from_bot BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_on DATETIME NOT NULL,
		created_by INTEGER,
		updated_on DATETIME NOT NULL,
		updated_by INTEGER
	);`)
}
