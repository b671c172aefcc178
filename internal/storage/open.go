package storage

import (
	"strings"

	"github.com/julianstephens/benchbook/internal/storage/mongo"
	"github.com/julianstephens/benchbook/internal/storage/postgres"
	"github.com/julianstephens/benchbook/internal/storage/sqlite"
)

// Backend names the store implementation selected for a connection string.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

// Detect picks the backend from the connection string. Anything that is not a
// postgres URL or key=value DSN, or a mongodb URL, is treated as a SQLite file path.
func Detect(connStr string) Backend {
	switch {
	case IsPostgres(connStr), isPostgresDSN(connStr):
		return BackendPostgres
	case strings.HasPrefix(connStr, "mongodb://"), strings.HasPrefix(connStr, "mongodb+srv://"):
		return BackendMongo
	default:
		return BackendSQLite
	}
}

func IsPostgres(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

func isPostgresDSN(connStr string) bool {
	return strings.Contains(connStr, "host=") || strings.Contains(connStr, "dbname=")
}

// New returns an unopened store for the connection string. Call Init or Load before use.
func New(connStr string) Provider {
	switch Detect(connStr) {
	case BackendPostgres:
		return postgres.New(connStr)
	case BackendMongo:
		return mongo.New(connStr)
	default:
		return sqlite.NewStore(connStr)
	}
}

// IsSQLite reports whether p is backed by a local SQLite file.
func IsSQLite(p Provider) bool {
	_, ok := p.(*sqlite.Store)
	return ok
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if !IsPostgres(connStr) && !strings.Contains(connStr, "=") {
		return false
	}
	_, err := postgres.ValidateConnString(connStr)
	return err == postgres.ErrEmbeddedCredentials
}
