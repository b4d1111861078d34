package srniel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/tsawler/tabula/format"
)

// ReaderAtCloser is a document opened for random access.
type ReaderAtCloser interface {
	io.ReaderAt
	io.Closer
}

// Decorates a Google Storage object handle with ReadAt. Each call is one
// ranged request.
type gsReaderAt struct {
	*storage.ObjectHandle
	Context context.Context
}

// ReadAt satisfies io.ReaderAt: a short read is always reported with an
// error, io.EOF at the end of the object.
func (o gsReaderAt) ReadAt(p []byte, offset int64) (int, error) {
	rdr, err := o.NewRangeReader(o.Context, offset, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rdr.Close()

	n, err := io.ReadFull(rdr, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}

	return n, err
}

// Satisfies io.Closer. Ranged readers are closed after every read, so this
// is a nop.
func (o gsReaderAt) Close() error {
	return nil
}

// OpenReaderAt opens a local file or a Google Storage object for random
// access and returns its size in bytes.
func OpenReaderAt(ctx context.Context, p string, client *storage.Client) (ReaderAtCloser, int64, error) {
	if IsGoogleStoragePath(p) {
		if client == nil {
			return nil, 0, fmt.Errorf("%s: no Google Storage client", p)
		}

		bucket, object, err := splitGSPath(p)
		if err != nil {
			return nil, 0, err
		}

		handle := client.Bucket(bucket).Object(object)
		attrs, err := handle.Attrs(ctx)
		if err != nil {
			return nil, 0, pfx.Err(fmt.Errorf("%s: %w", p, err))
		}

		return gsReaderAt{ObjectHandle: handle, Context: ctx}, attrs.Size, nil
	}

	f, err := os.Open(ExpandHome(p))
	if err != nil {
		return nil, 0, pfx.Err(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, pfx.Err(err)
	}

	return f, info.Size(), nil
}

// DocumentFormat identifies a document by extension, falling back to its
// content. Only the bytes needed to sniff the format are read, so a large
// Google Storage object is not downloaded.
func DocumentFormat(ctx context.Context, p string, client *storage.Client) (format.Format, error) {
	if f := format.Detect(p); f != format.Unknown {
		return f, nil
	}

	r, size, err := OpenReaderAt(ctx, p, client)
	if err != nil {
		return format.Unknown, err
	}
	defer r.Close()

	f, err := format.DetectFromReader(r, size)
	if err != nil {
		return format.Unknown, pfx.Err(fmt.Errorf("%s: %w", p, err))
	}

	return f, nil
}

// Supported reports whether tables can be read from documents of format f.
func Supported(f format.Format) bool {
	switch f {
	case format.PDF, format.DOCX, format.ODT:
		return true
	}
	return false
}
