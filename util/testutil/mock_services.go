package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
)

// These types wrap the real object store and registry client so tests
// can make individual calls fail.

// FaultyObjectStore passes calls through to Store unless the matching
// error field is set.
type FaultyObjectStore struct {
	Store     network.ObjectStore
	PutErr    error
	RemoveErr error

	// PartialWrite makes a failing put write the object before
	// returning PutErr, as a store might after a broken connection.
	PartialWrite bool

	mutex   sync.Mutex
	puts    []string
	removes []string
}

func (s *FaultyObjectStore) Bucket() string {
	return s.Store.Bucket()
}

func (s *FaultyObjectStore) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string, progress io.Reader) (int64, error) {
	s.mutex.Lock()
	s.puts = append(s.puts, key)
	s.mutex.Unlock()
	if s.PutErr != nil {
		if s.PartialWrite {
			s.Store.PutObject(ctx, key, reader, size, contentType, nil)
		}
		return 0, s.PutErr
	}
	return s.Store.PutObject(ctx, key, reader, size, contentType, progress)
}

func (s *FaultyObjectStore) RemoveObject(ctx context.Context, key string) error {
	s.mutex.Lock()
	s.removes = append(s.removes, key)
	s.mutex.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	return s.Store.RemoveObject(ctx, key)
}

func (s *FaultyObjectStore) StatObject(ctx context.Context, key string) (minio.ObjectInfo, error) {
	return s.Store.StatObject(ctx, key)
}

// Puts returns the keys passed to PutObject, in order.
func (s *FaultyObjectStore) Puts() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string{}, s.puts...)
}

// Removes returns the keys passed to RemoveObject, in order.
func (s *FaultyObjectStore) Removes() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]string{}, s.removes...)
}

// FaultyRegistry passes upload writes through to Client unless the
// matching error field is set.
type FaultyRegistry struct {
	Client    *network.RegistryClient
	CreateErr error
	SetKeyErr error
	DeleteErr error
}

func (r *FaultyRegistry) UploadCreate(ctx context.Context, upload *registry.Upload) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	return r.Client.UploadCreate(ctx, upload)
}

func (r *FaultyRegistry) UploadSetKey(ctx context.Context, upload *registry.Upload, key string) error {
	if r.SetKeyErr != nil {
		return r.SetKeyErr
	}
	return r.Client.UploadSetKey(ctx, upload, key)
}

func (r *FaultyRegistry) UploadDelete(ctx context.Context, id string) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	return r.Client.UploadDelete(ctx, id)
}
