package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"gorm.io/gorm"
)

// RegistryClient reads and writes upload and marker records. All read
// methods ignore pending uploads, which are rows whose storage key has
// not yet been filled in.
type RegistryClient struct {
	db     *gorm.DB
	logger *logging.Logger
}

// NewRegistryClient creates a new registry client on top of db.
func NewRegistryClient(db *gorm.DB, logger *logging.Logger) *RegistryClient {
	return &RegistryClient{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the uploads and markers tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&registry.Upload{}, &registry.Marker{})
}

// Migrate creates or updates the tables this client uses.
func (client *RegistryClient) Migrate(ctx context.Context) error {
	return Migrate(ctx, client.db)
}

// Ping checks that the database is reachable.
func (client *RegistryClient) Ping(ctx context.Context) error {
	sqlDB, err := client.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// complete restricts a query to uploads that have a storage key.
func complete(db *gorm.DB) *gorm.DB {
	return db.Where("storage_key <> ?", constants.PendingKey)
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), common.ErrNotFound)
	}
	return err
}

// UploadCreate inserts upload as a pending record. The ID is assigned
// on insert and any key the caller set is cleared.
func (client *RegistryClient) UploadCreate(ctx context.Context, upload *registry.Upload) error {
	upload.Key = constants.PendingKey
	return client.db.WithContext(ctx).Create(upload).Error
}

// UploadSetKey stores key on the upload, which marks it complete.
func (client *RegistryClient) UploadSetKey(ctx context.Context, upload *registry.Upload, key string) error {
	now := time.Now().UTC()
	result := client.db.WithContext(ctx).
		Model(&registry.Upload{}).
		Where("id = ?", upload.ID).
		Updates(map[string]interface{}{
			"storage_key": key,
			"updated_at":  now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("upload %s: %w", upload.ID, common.ErrNotFound)
	}
	upload.Key = key
	upload.UpdatedAt = now
	return nil
}

// UploadDelete removes the upload row with the given id, whether or not
// it is complete. Deleting a row that is already gone is not an error.
func (client *RegistryClient) UploadDelete(ctx context.Context, id string) error {
	return client.db.WithContext(ctx).Where("id = ?", id).Delete(&registry.Upload{}).Error
}

// UploadByID returns the complete upload with the given id, or an error
// wrapping common.ErrNotFound.
func (client *RegistryClient) UploadByID(ctx context.Context, id string) (*registry.Upload, error) {
	upload := &registry.Upload{}
	err := client.db.WithContext(ctx).Scopes(complete).Where("id = ?", id).First(upload).Error
	if err != nil {
		return nil, notFound(err, "upload %s", id)
	}
	return upload, nil
}

// UploadExists returns true if a complete upload with this id exists.
func (client *RegistryClient) UploadExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := client.db.WithContext(ctx).
		Model(&registry.Upload{}).
		Scopes(complete).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// UploadList returns one page of complete uploads, newest first, along
// with the total number of uploads matching the filter.
func (client *RegistryClient) UploadList(ctx context.Context, filter *registry.UploadFilter) ([]*registry.Upload, int64, error) {
	query := client.db.WithContext(ctx).Model(&registry.Upload{}).Scopes(complete)
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	uploads := make([]*registry.Upload, 0)
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&uploads).Error
	if err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}

type monthRow struct {
	UploadYear  int
	UploadMonth int
	UploadCount int64
}

type typeRow struct {
	DisasterType string
	UploadCount  int64
}

// UploadStatistics counts complete uploads in total, by month and by
// disaster type.
func (client *RegistryClient) UploadStatistics(ctx context.Context) (*registry.UploadStatistics, error) {
	db := client.db.WithContext(ctx)
	stats := &registry.UploadStatistics{
		MonthlyStats:      make([]registry.MonthlyUploadStats, 0),
		DisasterTypeStats: make([]registry.DisasterTypeStats, 0),
	}
	err := db.Model(&registry.Upload{}).Scopes(complete).Count(&stats.TotalUploads).Error
	if err != nil {
		return nil, err
	}

	yearExpr, monthExpr := client.monthExpressions()
	var months []monthRow
	err = db.Model(&registry.Upload{}).
		Scopes(complete).
		Select(fmt.Sprintf("%s AS upload_year, %s AS upload_month, COUNT(*) AS upload_count", yearExpr, monthExpr)).
		Group("upload_year").
		Group("upload_month").
		Order("upload_year DESC").
		Order("upload_month DESC").
		Scan(&months).Error
	if err != nil {
		return nil, err
	}
	for _, row := range months {
		stats.MonthlyStats = append(stats.MonthlyStats, registry.MonthlyUploadStats{
			Year:  row.UploadYear,
			Month: row.UploadMonth,
			Count: row.UploadCount,
		})
	}

	var types []typeRow
	err = db.Model(&registry.Upload{}).
		Scopes(complete).
		Select("type AS disaster_type, COUNT(*) AS upload_count").
		Group("type").
		Order("upload_count DESC").
		Order("disaster_type ASC").
		Scan(&types).Error
	if err != nil {
		return nil, err
	}
	for _, row := range types {
		dt := registry.DisasterType(row.DisasterType)
		stats.DisasterTypeStats = append(stats.DisasterTypeStats, registry.DisasterTypeStats{
			Type:  dt,
			Label: dt.Label(),
			Count: row.UploadCount,
		})
	}
	return stats, nil
}

// monthExpressions returns SQL that extracts the year and month of
// created_at in the current dialect.
func (client *RegistryClient) monthExpressions() (string, string) {
	if client.db.Dialector.Name() == "sqlite" {
		return "CAST(strftime('%Y', created_at) AS INTEGER)",
			"CAST(strftime('%m', created_at) AS INTEGER)"
	}
	return "CAST(EXTRACT(YEAR FROM created_at) AS INTEGER)",
		"CAST(EXTRACT(MONTH FROM created_at) AS INTEGER)"
}

// MarkerCreate inserts marker. The caller must check that the upload
// it refers to exists.
func (client *RegistryClient) MarkerCreate(ctx context.Context, marker *registry.Marker) error {
	return client.db.WithContext(ctx).Create(marker).Error
}

// MarkerByID returns the marker with the given id, or an error wrapping
// common.ErrNotFound.
func (client *RegistryClient) MarkerByID(ctx context.Context, id string) (*registry.Marker, error) {
	marker := &registry.Marker{}
	err := client.db.WithContext(ctx).Where("id = ?", id).First(marker).Error
	if err != nil {
		return nil, notFound(err, "marker %s", id)
	}
	return marker, nil
}

// MarkerList returns all markers, newest first.
func (client *RegistryClient) MarkerList(ctx context.Context) ([]*registry.Marker, error) {
	return client.markerFind(client.db.WithContext(ctx))
}

// MarkerListByUpload returns the markers for one upload, newest first.
func (client *RegistryClient) MarkerListByUpload(ctx context.Context, uploadID string) ([]*registry.Marker, error) {
	return client.markerFind(client.db.WithContext(ctx).Where("upload_id = ?", uploadID))
}

func (client *RegistryClient) markerFind(query *gorm.DB) ([]*registry.Marker, error) {
	markers := make([]*registry.Marker, 0)
	err := query.Order("created_at DESC").Order("id DESC").Find(&markers).Error
	return markers, err
}
