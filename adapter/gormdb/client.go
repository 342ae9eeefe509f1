// Package gormdb implements ports.DbClient, opening connections with
// gorm: the dialector is selected by the connection's "driver" field
// ("sqlite" or "postgres") and opened on its "dsn" field. The connection
// descriptor arrives per-call as a template-resolved map rather than from
// static EngineConfig, and open connections are cached by driver and DSN
// so repeated fetches against the same database reuse one pool.
package gormdb

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/ports"
)

// Client is a reference ports.DbClient backed by gorm's postgres and
// sqlite dialectors.
type Client struct {
	mu    sync.Mutex
	conns map[string]*gorm.DB
}

// NewClient returns a Client with no open connections.
func NewClient() *Client {
	return &Client{conns: make(map[string]*gorm.DB)}
}

var _ ports.DbClient = (*Client)(nil)

// Fetch opens (or reuses) the connection named by connection's "driver"
// and "dsn" fields, then selects columns from table filtered by where.
// Adapters must not re-enter the engine — connection, table, columns,
// and where arrive already fully resolved.
func (c *Client) Fetch(ctx context.Context, connection map[string]any, table string, columns []string, where string) ([]map[string]any, error) {
	db, err := c.connFor(connection)
	if err != nil {
		return nil, err
	}

	query := db.WithContext(ctx).Table(table).Select(columns)
	if where != "" {
		query = query.Where(where)
	}

	var rows []map[string]any
	if err := query.Find(&rows).Error; err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "fetching from table %q", table)
	}
	return rows, nil
}

func (c *Client) connFor(connection map[string]any) (*gorm.DB, error) {
	driver, _ := connection["driver"].(string)
	dsn, _ := connection["dsn"].(string)
	if driver == "" || dsn == "" {
		return nil, kiterrors.WrapWithCode(
			fmt.Errorf("connection must supply non-empty \"driver\" and \"dsn\""),
			kiterrors.ErrLoadFailed, "resolving db connection")
	}

	cacheKey := driver + "|" + dsn

	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.conns[cacheKey]; ok {
		return db, nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, kiterrors.WrapWithCode(
			fmt.Errorf("unsupported database driver %q", driver),
			kiterrors.ErrLoadFailed, "opening db connection")
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "opening db connection")
	}
	c.conns[cacheKey] = db
	return db, nil
}
