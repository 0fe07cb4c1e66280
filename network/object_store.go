package network

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/models/common"
)

// ObjectStore is the subset of S3 operations the upload pipeline needs.
// It is defined as an interface so tests can inject failures.
type ObjectStore interface {
	Bucket() string
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, error)
	RemoveObject(ctx context.Context, key string) error
	StatObject(ctx context.Context, key string) (minio.ObjectInfo, error)
}

// MinioObjectStore writes to a single bucket through a minio client.
type MinioObjectStore struct {
	client *minio.Client
	bucket string
	region string
	logger *logging.Logger
}

// NewMinioObjectStore returns an ObjectStore backed by bucket.
func NewMinioObjectStore(client *minio.Client, bucket, region string, logger *logging.Logger) *MinioObjectStore {
	return &MinioObjectStore{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}
}

func (s *MinioObjectStore) Bucket() string {
	return s.bucket
}

// PutObject streams size bytes from reader into key. If progress is
// not nil, minio reads from it as bytes are sent.
func (s *MinioObjectStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, error) {
	opts := minio.PutObjectOptions{
		ContentType: contentType,
		Progress:    progress,
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, reader, size, opts)
	if err != nil {
		return 0, fmt.Errorf("put %s/%s: %w", s.bucket, key, err)
	}
	return info.Size, nil
}

// RemoveObject deletes key. Removing a key that does not exist is
// not an error.
func (s *MinioObjectStore) RemoveObject(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func (s *MinioObjectStore) StatObject(ctx context.Context, key string) (minio.ObjectInfo, error) {
	return s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
}

// EnsureBucket creates the bucket if it does not exist and gives it a
// public-read policy. It returns an error only if we can't tell whether
// the bucket exists or can't create it. A failure to set the policy is
// logged and ignored, because some S3 implementations don't support
// bucket policies.
func (s *MinioObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return common.NewError(fmt.Sprintf("Cannot check whether bucket %s exists", s.bucket), err, true)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
		if err != nil && !isBucketAlreadyExists(err) {
			return common.NewError(fmt.Sprintf("Cannot create bucket %s", s.bucket), err, true)
		}
		s.logger.Infof("Created bucket %s", s.bucket)
	}
	policy, err := PublicReadPolicy(s.bucket)
	if err != nil {
		return err
	}
	err = s.client.SetBucketPolicy(ctx, s.bucket, policy)
	if err != nil {
		s.logger.Warningf("Could not set public-read policy on bucket %s: %v", s.bucket, err)
	}
	return nil
}

func isBucketAlreadyExists(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// PublicReadPolicy returns a bucket policy that lets anyone read any
// object in bucket.
func PublicReadPolicy(bucket string) (string, error) {
	policy := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{
			{
				Effect:    "Allow",
				Principal: map[string][]string{"AWS": {"*"}},
				Action:    []string{"s3:GetObject"},
				Resource:  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucket)},
			},
		},
	}
	data, err := json.Marshal(policy)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
