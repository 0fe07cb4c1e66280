package common

import (
	"fmt"
	"net/url"
	"strings"
)

// StorageTarget describes where uploaded objects live and how clients
// reach them.
type StorageTarget struct {
	Bucket         string
	PublicEndpoint string
}

func NewStorageTarget(creds S3Credentials) *StorageTarget {
	return &StorageTarget{
		Bucket:         creds.Bucket,
		PublicEndpoint: creds.PublicEndpoint,
	}
}

// URLFor returns the public URL for the specified key. For example:
// target.URLFor("uploads/1234.jpeg") returns something like
// http://localhost:9000/images/uploads/1234.jpeg. It returns an empty
// string for an empty key, since pending uploads have no object.
func (target *StorageTarget) URLFor(key string) string {
	if key == "" {
		return ""
	}
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(target.PublicEndpoint, "/"),
		url.PathEscape(target.Bucket),
		strings.Join(segments, "/"))
}
