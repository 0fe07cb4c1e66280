package testutil

import (
	"net/http/httptest"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/minio/minio-go/v7"
	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/network"
)

const (
	S3KeyID     = "test-key-id"
	S3SecretKey = "test-secret-key"
	S3Region    = "us-east-1"
)

// S3Server is an in-memory S3 server for tests. The default bucket
// exists when the server starts.
type S3Server struct {
	server *httptest.Server
	URL    string
}

func NewS3Server() *S3Server {
	backend := s3mem.New()
	backend.CreateBucket(constants.DefaultBucket)
	faker := gofakes3.New(backend)
	server := httptest.NewServer(faker.Server())
	return &S3Server{
		server: server,
		URL:    server.URL,
	}
}

// Credentials returns settings that point at this server and the
// default bucket.
func (s *S3Server) Credentials() common.S3Credentials {
	return common.S3Credentials{
		Bucket:         constants.DefaultBucket,
		Endpoint:       s.URL,
		KeyID:          S3KeyID,
		PublicEndpoint: s.URL,
		Region:         S3Region,
		SecretKey:      S3SecretKey,
		UseSSL:         false,
	}
}

// Client returns a minio client connected to this server.
func (s *S3Server) Client() *minio.Client {
	client, err := common.NewS3Client(s.Credentials())
	if err != nil {
		panic(err)
	}
	return client
}

// ObjectStore returns an object store that writes to bucket.
func (s *S3Server) ObjectStore(bucket string, logger *logging.Logger) *network.MinioObjectStore {
	return network.NewMinioObjectStore(s.Client(), bucket, S3Region, logger)
}

func (s *S3Server) Close() {
	s.server.Close()
}
