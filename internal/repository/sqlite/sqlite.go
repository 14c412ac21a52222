package sqlite

import (
	"time"

	"github.com/garnizeh/mentormatch/internal/db"
	"github.com/garnizeh/mentormatch/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn *db.DB
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.MatchRequestRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB) *SQLiteRepo {
	return &SQLiteRepo{conn: conn}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
