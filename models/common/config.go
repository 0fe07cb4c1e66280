package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/util"
	"github.com/spf13/viper"
)

type Config struct {
	ConfigName         string
	CORSAllowedOrigins []string
	DBDriver           string
	DBDSN              string
	HTTPPort           int
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	LogDir             string
	LogLevel           logging.Level
	MaxFileSize        int64
	PidFile            string
	S3Credentials      S3Credentials
}

// S3Credentials describes how to reach the object store. Endpoint is
// the host:port the server writes to. PublicEndpoint is the base URL
// used in links handed back to clients, which may differ from the
// internal endpoint (e.g. minio:9000 vs https://cdn.example.com).
type S3Credentials struct {
	Bucket         string
	Endpoint       string
	KeyID          string
	PublicEndpoint string
	Region         string
	SecretKey      string
	UseSSL         bool
}

var logLevels = map[string]logging.Level{
	"CRITICAL": logging.CRITICAL,
	"ERROR":    logging.ERROR,
	"WARNING":  logging.WARNING,
	"NOTICE":   logging.NOTICE,
	"INFO":     logging.INFO,
	"DEBUG":    logging.DEBUG,
}

// NewConfig returns a new config based on the env vars APP_CONFIG_DIR
// and APP_ENV. It panics if the config can't be loaded or is invalid,
// since the server must not start without storage settings.
func NewConfig() *Config {
	configDir, envName := getEnvVars()
	config, err := LoadConfig(configDir, envName)
	if err != nil {
		panic(err)
	}
	return config
}

// LoadConfig loads .env.{envName} from configDir. Environment variables
// override values in the file. The returned config has been validated
// and has had its paths expanded.
func LoadConfig(configDir, envName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configDir)
	v.SetConfigName(".env." + envName)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)
	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("Fatal error config file: %w", err)
	}
	config := fromViper(v, envName)
	if err = config.expandPaths(); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("AWS_S3_BUCKET", constants.DefaultBucket)
	v.SetDefault("AWS_USE_SSL", false)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("HTTP_READ_TIMEOUT", "10m")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10m")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("MAX_FILE_SIZE", constants.DefaultMaxFileSize)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func fromViper(v *viper.Viper, envName string) *Config {
	level, ok := logLevels[strings.ToUpper(v.GetString("LOG_LEVEL"))]
	if !ok {
		level = logging.INFO
	}
	creds := S3Credentials{
		Bucket:         v.GetString("AWS_S3_BUCKET"),
		Endpoint:       v.GetString("AWS_ENDPOINT"),
		KeyID:          v.GetString("AWS_ACCESS_KEY_ID"),
		PublicEndpoint: v.GetString("AWS_PUBLIC_ENDPOINT"),
		Region:         v.GetString("AWS_REGION"),
		SecretKey:      v.GetString("AWS_SECRET_ACCESS_KEY"),
		UseSSL:         v.GetBool("AWS_USE_SSL"),
	}
	if creds.PublicEndpoint == "" && creds.Endpoint != "" {
		creds.PublicEndpoint = creds.EndpointURL()
	}
	return &Config{
		ConfigName:         envName,
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DBDriver:           v.GetString("DB_DRIVER"),
		DBDSN:              v.GetString("DB_DSN"),
		HTTPPort:           v.GetInt("HTTP_PORT"),
		HTTPReadTimeout:    v.GetDuration("HTTP_READ_TIMEOUT"),
		HTTPWriteTimeout:   v.GetDuration("HTTP_WRITE_TIMEOUT"),
		LogDir:             v.GetString("LOG_DIR"),
		LogLevel:           level,
		MaxFileSize:        v.GetInt64("MAX_FILE_SIZE"),
		PidFile:            v.GetString("PID_FILE"),
		S3Credentials:      creds,
	}
}

func getEnvVars() (string, string) {
	configDir := getRequiredEnvVar("APP_CONFIG_DIR")
	envName := getRequiredEnvVar("APP_ENV")
	return configDir, envName
}

func getRequiredEnvVar(varName string) string {
	value := os.Getenv(varName)
	if value == "" {
		panic(fmt.Sprintf("Required env var %s not set", varName))
	}
	return value
}

// EndpointURL returns the internal endpoint with its scheme.
func (c S3Credentials) EndpointURL() string {
	if strings.Contains(c.Endpoint, "://") {
		return strings.TrimRight(c.Endpoint, "/")
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, strings.TrimRight(c.Endpoint, "/"))
}

// Host returns the endpoint without scheme, which is the form
// minio.New expects.
func (c S3Credentials) Host() string {
	host := c.Endpoint
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.TrimRight(host, "/")
}

// Validate returns an error describing every missing required setting.
func (c *Config) Validate() error {
	missing := make([]string, 0)
	required := map[string]string{
		"AWS_ENDPOINT":          c.S3Credentials.Endpoint,
		"AWS_REGION":            c.S3Credentials.Region,
		"AWS_ACCESS_KEY_ID":     c.S3Credentials.KeyID,
		"AWS_SECRET_ACCESS_KEY": c.S3Credentials.SecretKey,
		"AWS_S3_BUCKET":         c.S3Credentials.Bucket,
		"DB_DRIVER":             c.DBDriver,
		"DB_DSN":                c.DBDSN,
	}
	for _, name := range []string{"AWS_ENDPOINT", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_S3_BUCKET", "DB_DRIVER", "DB_DSN"} {
		if strings.TrimSpace(required[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("Missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("Unsupported DB_DRIVER %q: use postgres or sqlite", c.DBDriver)
	}
	if c.MaxFileSize < 1 {
		return fmt.Errorf("MAX_FILE_SIZE must be greater than zero")
	}
	return nil
}

// Expand ~ to home dir in path settings.
func (c *Config) expandPaths() error {
	var err error
	if c.LogDir, err = util.ExpandTilde(c.LogDir); err != nil {
		return err
	}
	c.PidFile, err = util.ExpandTilde(c.PidFile)
	return err
}

func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
