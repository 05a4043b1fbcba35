package db

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	connOnce sync.Once
	conn     *gorm.DB
	connErr  error
)

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Connect returns the shared process-wide connection, opening it on first
// use. Safe under concurrent first access; later calls reuse the cached
// handle regardless of the dsn passed.
func Connect(dsn string) (*gorm.DB, error) {
	connOnce.Do(func() {
		conn, connErr = NewMySQL(dsn)
	})
	return conn, connErr
}

// Adapter is the narrow seam between repositories and a concrete engine:
// the connection handle, an id factory, and whether multi-statement
// transactions are available. A document-store engine would set
// SupportsTransactions to false and plug its own id scheme.
type Adapter struct {
	DB                   *gorm.DB
	SupportsTransactions bool
	NewID                func() string
}

// NewAdapter wraps a relational GORM handle with uuid ids and transactions.
func NewAdapter(db *gorm.DB) *Adapter {
	return &Adapter{
		DB:                   db,
		SupportsTransactions: true,
		NewID:                uuid.NewString,
	}
}
