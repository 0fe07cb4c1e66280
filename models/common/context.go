package common

import (
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/util/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Context holds the long-lived clients shared by every request. The
// minio client and the gorm handle are both safe for concurrent use.
type Context struct {
	Config        *Config
	DB            *gorm.DB
	Logger        *logging.Logger
	S3Client      *minio.Client
	StorageTarget *StorageTarget
}

// NewContextFromConfig builds a Context from an already-loaded config.
func NewContextFromConfig(config *Config) (*Context, error) {
	_logger, _ := logger.InitLogger(config.LogDir, config.LogLevel)
	return NewContextWithLogger(config, _logger)
}

// NewContextWithLogger is like NewContextFromConfig, with a logger
// supplied by the caller.
func NewContextWithLogger(config *Config, _logger *logging.Logger) (*Context, error) {
	s3Client, err := NewS3Client(config.S3Credentials)
	if err != nil {
		return nil, fmt.Errorf("Could not initialize S3 client: %w", err)
	}
	if config.LogLevel == logging.DEBUG {
		s3Client.TraceOn(NewTracer(_logger))
	}
	db, err := OpenDB(config.DBDriver, config.DBDSN, _logger)
	if err != nil {
		return nil, fmt.Errorf("Could not open %s database: %w", config.DBDriver, err)
	}
	return &Context{
		Config:        config,
		DB:            db,
		Logger:        _logger,
		S3Client:      s3Client,
		StorageTarget: NewStorageTarget(config.S3Credentials),
	}, nil
}

// NewS3Client returns a minio client for the configured endpoint. We
// force path-style bucket lookup, since local S3 servers such as minio
// don't resolve virtual-host bucket names.
func NewS3Client(creds S3Credentials) (*minio.Client, error) {
	return minio.New(
		creds.Host(),
		&minio.Options{
			Creds:        credentials.NewStaticV4(creds.KeyID, creds.SecretKey, ""),
			Secure:       creds.UseSSL,
			Region:       creds.Region,
			BucketLookup: minio.BucketLookupPath,
		})
}

// OpenDB opens a gorm connection using the named driver, which must be
// "postgres" or "sqlite". SQL statements are logged at DEBUG level.
func OpenDB(driver, dsn string, _logger *logging.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("Unsupported database driver %q", driver)
	}
	logLevel := gormlogger.Warn
	if _logger.IsEnabledFor(logging.DEBUG) {
		logLevel = gormlogger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(&gormWriter{logger: _logger}, gormlogger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// gormWriter sends gorm's log output to our logger.
type gormWriter struct {
	logger *logging.Logger
}

func (w *gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Debugf(format, args...)
}
