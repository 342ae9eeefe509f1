// Package gormkv implements ports.KVSClient on a sqlite- or
// postgres-backed table via gorm, with lazy TTL expiry: an expired row is treated as absent on Get
// and deleted opportunistically rather than reaped by a background
// sweep (the engine has no timers — §5).
package gormkv

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/ports"
)

// entry is the kv_entries row shape. ExpiresAt is a unix timestamp; zero
// means no TTL.
type entry struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value"`
	ExpiresAt int64  `gorm:"column:expires_at"`
}

func (entry) TableName() string { return "kv_entries" }

// Client is a reference ports.KVSClient backed by a sqlite or postgres
// table.
type Client struct {
	db *gorm.DB
}

// NewClient opens (or creates) a kv_entries-backed database at dsn using
// driver ("sqlite" or "postgres") and migrates the table.
func NewClient(driver, dsn string) (*Client, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported kv store driver %q", kiterrors.ErrStoreFailed, driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "opening kv store %q", dsn)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "migrating kv store %q", dsn)
	}
	return &Client{db: db}, nil
}

var _ ports.KVSClient = (*Client)(nil)

// Get returns key's value if present and not expired. An expired row is
// deleted and reported absent.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := c.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, kiterrors.WrapWithCode(err, kiterrors.ErrLoadFailed, "reading kv key %q", key)
	}
	if e.ExpiresAt != 0 && e.ExpiresAt <= time.Now().Unix() {
		c.db.WithContext(ctx).Where("key = ?", key).Delete(&entry{})
		return "", false, nil
	}
	return e.Value, true, nil
}

// Set inserts or overwrites key. ttlSeconds <= 0 means no expiry.
func (c *Client) Set(ctx context.Context, key string, value string, ttlSeconds int64) error {
	var expiresAt int64
	if ttlSeconds > 0 {
		expiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second).Unix()
	}
	e := entry{Key: key, Value: value, ExpiresAt: expiresAt}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&e).Error
	if err != nil {
		return kiterrors.WrapWithCode(err, kiterrors.ErrStoreFailed, "writing kv key %q", key)
	}
	return nil
}

// Delete removes key. Reports whether it was present.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	res := c.db.WithContext(ctx).Where("key = ?", key).Delete(&entry{})
	if res.Error != nil {
		return false, kiterrors.WrapWithCode(res.Error, kiterrors.ErrStoreFailed, "deleting kv key %q", key)
	}
	return res.RowsAffected > 0, nil
}
