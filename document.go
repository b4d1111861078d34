// Package srniel locates and stages the input documents for NIEL extraction.
// Documents may be local files or Google Storage objects (gs://bucket/path).
package srniel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/tsawler/tabula/format"
)

const gsPrefix = "gs://"

// IsGoogleStoragePath reports whether p names a Google Storage object.
func IsGoogleStoragePath(p string) bool {
	return strings.HasPrefix(p, gsPrefix)
}

// splitGSPath detects the bucket and the path to the actual object.
func splitGSPath(p string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(p, gsPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into bucket and object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// Exists reports whether the document can be found. Local paths must name a
// regular file. Google Storage paths require a client; a nil client means the
// object cannot be checked and is reported as missing.
func Exists(ctx context.Context, p string, client *storage.Client) (bool, error) {
	if IsGoogleStoragePath(p) {
		if client == nil {
			return false, fmt.Errorf("%s: no Google Storage client", p)
		}

		bucket, object, err := splitGSPath(p)
		if err != nil {
			return false, err
		}

		_, err = client.Bucket(bucket).Object(object).Attrs(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		} else if err != nil {
			return false, pfx.Err(fmt.Errorf("%s: %w", p, err))
		}

		return true, nil
	}

	info, err := os.Stat(ExpandHome(p))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, pfx.Err(err)
	}

	return info.Mode().IsRegular(), nil
}

// MissingDocuments checks every path and returns those that do not exist.
// Any error other than "not found" aborts the check.
func MissingDocuments(ctx context.Context, paths []string, client *storage.Client) ([]string, error) {
	var missing []string
	for _, p := range paths {
		ok, err := Exists(ctx, p, client)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, p)
		}
	}

	return missing, nil
}

// OpenDocument opens a local file or a Google Storage object for reading and
// returns its size in bytes.
func OpenDocument(ctx context.Context, p string, client *storage.Client) (io.ReadCloser, int64, error) {
	if client != nil && IsGoogleStoragePath(p) {
		bucket, object, err := splitGSPath(p)
		if err != nil {
			return nil, 0, err
		}

		r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", p, err))
		}

		return r, r.Attrs.Size, nil
	}

	f, err := os.Open(ExpandHome(p))
	if err != nil {
		return nil, 0, err
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, fstat.Size(), nil
}

// Stage returns a local path for the document. Local documents are returned
// as-is. Google Storage objects are copied to a temporary file named with the
// object's extension, or with the extension of its sniffed format when the
// object name has none we recognize. The returned cleanup removes it. Cleanup
// is never nil.
func Stage(ctx context.Context, p string, client *storage.Client) (string, func(), error) {
	nop := func() {}

	if !IsGoogleStoragePath(p) {
		return ExpandHome(p), nop, nil
	}

	src, _, err := OpenDocument(ctx, p, client)
	if err != nil {
		return "", nop, err
	}
	defer src.Close()

	ext := path.Ext(p)
	if format.Detect(p) == format.Unknown {
		if f, err := DocumentFormat(ctx, p, client); err == nil && f != format.Unknown {
			ext = f.Extension()
		}
	}

	tmp, err := os.CreateTemp("", "srniel-*"+ext)
	if err != nil {
		return "", nop, pfx.Err(err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nop, pfx.Err(fmt.Errorf("%s: %w", p, err))
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nop, pfx.Err(err)
	}

	return tmp.Name(), cleanup, nil
}
