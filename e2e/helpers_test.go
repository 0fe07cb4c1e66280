package e2e_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/api"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/util/logger"
	"github.com/scorve12/disaster-uploads/util/testutil"
	"github.com/stretchr/testify/require"
)

var S3TestServer *testutil.S3Server

func TestMain(m *testing.M) {
	S3TestServer = testutil.NewS3Server()
	exitCode := m.Run()
	S3TestServer.Close()
	os.Exit(exitCode)
}

// E2ECtx holds a server started the way the app starts it: config
// loaded from a .env file, tables migrated, bucket provisioned.
type E2ECtx struct {
	Bucket  string
	Context *common.Context
	Server  *httptest.Server
	T       *testing.T
}

func writeEnvFile(t *testing.T, dir, bucket string) {
	creds := S3TestServer.Credentials()
	settings := fmt.Sprintf(`HTTP_PORT=0
DB_DRIVER=sqlite
DB_DSN=%s
AWS_ENDPOINT=%s
AWS_REGION=%s
AWS_ACCESS_KEY_ID=%s
AWS_SECRET_ACCESS_KEY=%s
AWS_S3_BUCKET=%s
AWS_USE_SSL=false
MAX_FILE_SIZE=4096
LOG_LEVEL=DEBUG
CORS_ALLOWED_ORIGINS=https://map.example.com
`,
		filepath.Join(dir, "uploads.db"),
		creds.Endpoint, creds.Region, creds.KeyID, creds.SecretKey, bucket)
	require.Nil(t, os.WriteFile(filepath.Join(dir, ".env.e2e"), []byte(settings), 0644))
}

func initTestContext(t *testing.T) *E2ECtx {
	dir := t.TempDir()
	bucket := "e2e-" + uuid.NewString()[:8]
	writeEnvFile(t, dir, bucket)

	config, err := common.LoadConfig(dir, "e2e")
	require.Nil(t, err)
	appContext, err := common.NewContextWithLogger(config, logger.Discard())
	require.Nil(t, err)
	sqlDB, err := appContext.DB.DB()
	require.Nil(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	ctx := context.Background()
	require.Nil(t, network.Migrate(ctx, appContext.DB))
	store := network.NewMinioObjectStore(appContext.S3Client, bucket, config.S3Credentials.Region, appContext.Logger)
	require.Nil(t, store.EnsureBucket(ctx))

	server := httptest.NewServer(api.NewServer(appContext).Handler())
	t.Cleanup(server.Close)
	return &E2ECtx{
		Bucket:  bucket,
		Context: appContext,
		Server:  server,
		T:       t,
	}
}
