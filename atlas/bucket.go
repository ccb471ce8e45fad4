package atlas

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"sync"
)

// Bucket is an append-only, concurrency-safe external-memory file of
// length-prefixed byte records: the contract spec.md's design note
// "Vendored third-party code" names as "(c) a content-compressed
// external-memory bucket". Compression is left to the OS/filesystem
// layer (spec.md requires no byte-level format compatibility between
// runs); Bucket supplies the append/sequential-read/size/remove
// operations spec.md section 4.3 requires of an edge-matrix cell and
// section 3 requires of a per-subgraph bucket.
type Bucket struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *bufio.Writer
	count  int64
	closed bool
}

// OpenBucket creates (or truncates, per spec.md section 7: "the output
// file is truncated at open") the bucket file at path for appending.
func OpenBucket(path string) (*Bucket, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &Bucket{path: path, file: f, writer: bufio.NewWriterSize(f, 64*1024)}, nil
}

// Append writes one framed record (a 4-byte little-endian length
// followed by rec) to the bucket and returns its 0-indexed position.
//
// Complexity: amortized O(len(rec)).
func (b *Bucket) Append(rec []byte) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(rec)))
	if _, err := b.writer.Write(hdr[:]); err != nil {
		return 0, err
	}
	if _, err := b.writer.Write(rec); err != nil {
		return 0, err
	}
	idx := b.count
	b.count++
	return idx, nil
}

// Count returns the number of records appended so far.
func (b *Bucket) Count() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Flush ensures all buffered Appends have reached the underlying file.
func (b *Bucket) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	return b.writer.Flush()
}

// Path returns the bucket's backing file path.
func (b *Bucket) Path() string { return b.path }

// Close flushes and releases the bucket's file handle.
func (b *Bucket) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.writer.Flush(); err != nil {
		b.file.Close()
		return err
	}
	return b.file.Close()
}

// Remove closes and deletes the bucket's backing file, per spec.md
// section 4.3's required "remove block" operation.
func (b *Bucket) Remove() error {
	if err := b.Close(); err != nil {
		return err
	}
	return os.Remove(b.path)
}

// Reader opens a fresh sequential Reader over everything appended to
// the bucket so far; it flushes pending writes first so the reader
// observes them.
func (b *Bucket) Reader() (*Reader, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	f, err := os.Open(b.path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, r: bufio.NewReaderSize(f, 64*1024)}, nil
}

// OpenReader opens a sequential Reader over an existing bucket file at
// path without truncating it, for files whose Bucket is already closed.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, r: bufio.NewReaderSize(f, 64*1024)}, nil
}

// Reader sequentially decodes the framed records written by Bucket.Append.
type Reader struct {
	file *os.File
	r    *bufio.Reader
}

// Next returns the next record, or io.EOF once the bucket is exhausted.
func (r *Reader) Next() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedRecord
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedRecord
		}
		return nil, err
	}
	return buf, nil
}

// Close releases the reader's file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}
