package filestorage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrInvalidPath is returned for object paths that escape their bucket
var ErrInvalidPath = errors.New("invalid object path")

// ErrObjectNotFound is returned when an object does not exist
var ErrObjectNotFound = errors.New("object not found")

// Object is an opened stored object
type Object struct {
	io.ReadSeekCloser
	Name    string
	Size    int64
	ModTime time.Time
}

// ObjectStorage stores files in named buckets addressed by a relative path,
// e.g. bucket "student-documents", path "{studentId}/aadhaar-1718000000000.png".
type ObjectStorage interface {
	// Put writes r to bucket/objectPath and returns the number of bytes written
	Put(ctx context.Context, bucket, objectPath string, r io.Reader) (int64, error)

	// Delete removes bucket/objectPath. Missing objects are not an error.
	Delete(ctx context.Context, bucket, objectPath string) error

	// Open opens bucket/objectPath for reading
	Open(ctx context.Context, bucket, objectPath string) (*Object, error)
}
