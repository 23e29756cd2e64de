package storage

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/julianstephens/hearth/internal/storage/jsonstore"
	"github.com/julianstephens/hearth/internal/storage/postgres"
	"github.com/julianstephens/hearth/internal/storage/sqlite"
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// Detect picks the backend for target: a postgres:// or postgresql:// URL or
// key=value DSN, a .json file, or an SQLite file for anything else.
func Detect(target string) Kind {
	switch {
	case postgres.IsConnString(target), postgres.IsDSN(target):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(target), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// Open returns an unopened provider for target. PostgreSQL connection strings
// carrying a password are rejected.
func Open(target string) (Provider, error) {
	return open(target, false)
}

// OpenTrusted is Open for targets read from the environment or the OS keyring,
// where an embedded password is allowed.
func OpenTrusted(target string) (Provider, error) {
	return open(target, true)
}

func open(target string, allowPassword bool) (Provider, error) {
	switch Detect(target) {
	case KindPostgres:
		if _, err := postgres.ValidateConnString(target); err != nil {
			if !allowPassword || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(target), nil
	case KindJSON:
		return jsonstore.New(target), nil
	default:
		return sqlite.NewStore(target), nil
	}
}
