package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/futureedge/counselling/internal/pkg/logger"
	"github.com/google/uuid"
)

// LocalStorage keeps buckets as directories under basePath.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string, buckets ...string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	for _, b := range buckets {
		if err := os.MkdirAll(filepath.Join(basePath, b), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", b, err)
		}
	}
	logger.Info().Str("path", basePath).Strs("buckets", buckets).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// resolve maps bucket/objectPath onto the filesystem, rejecting traversal.
func (ls *LocalStorage) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == ".." || bucket == "." {
		return "", ErrInvalidPath
	}
	if objectPath == "" || strings.HasPrefix(objectPath, "/") || strings.Contains(objectPath, `\`) {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(objectPath)
	if cleaned != objectPath || cleaned == "." || strings.HasPrefix(cleaned, "../") || cleaned == ".." {
		return "", ErrInvalidPath
	}
	return filepath.Join(ls.basePath, bucket, filepath.FromSlash(cleaned)), nil
}

// Put writes the object via a temp file and rename so readers never see a partial object.
func (ls *LocalStorage) Put(ctx context.Context, bucket, objectPath string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dstPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object directory")
		return 0, fmt.Errorf("failed to create object directory: %w", err)
	}

	tmpPath := dstPath + "." + uuid.NewString() + ".tmp"
	dst, err := os.Create(tmpPath)
	if err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to create destination file")
		return 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	written, err := io.Copy(dst, r)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write object content")
		return 0, fmt.Errorf("failed to save file content: %w", err)
	}

	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to finalize object: %w", err)
	}

	logger.Debug().Str("bucket", bucket).Str("path", objectPath).Int64("bytes", written).Msg("Object stored")
	return written, nil
}

// Delete removes an object. Deleting a missing object succeeds.
func (ls *LocalStorage) Delete(_ context.Context, bucket, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	fullPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("bucket", bucket).Str("path", objectPath).Msg("Object to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}

	logger.Debug().Str("bucket", bucket).Str("path", objectPath).Msg("Object deleted")
	return nil
}

// Open opens an object for reading
func (ls *LocalStorage) Open(_ context.Context, bucket, objectPath string) (*Object, error) {
	fullPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, ErrObjectNotFound
	}

	return &Object{
		ReadSeekCloser: f,
		Name:           info.Name(),
		Size:           info.Size(),
		ModTime:        info.ModTime(),
	}, nil
}
