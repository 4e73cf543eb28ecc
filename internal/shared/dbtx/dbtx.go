// Package dbtx lets gorm repositories join a transaction that a service opened
// on the shared *sql.DB.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm handle whose statements run on tx. A nil tx returns db
// unchanged. The session is cloned the same way gorm.DB.Begin does it, so the
// parent handle is never mutated.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil || db == nil {
		return db
	}
	sess := db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	sess.Statement.ConnPool = tx
	return sess
}
