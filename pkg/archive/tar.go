package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/pthscan/pkg/errors"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Member is one entry of an open [Tar]. It can only be read back through
// the archive that produced it.
type Member struct {
	Name string // path inside the archive, without a trailing slash

	owner   *Tar
	index   int
	regular bool
}

// Tar is an open tar archive over an in-memory buffer. It is not safe
// for concurrent use.
type Tar struct {
	data    []byte
	gzipped bool
	members []Member
	closed  bool
}

// OpenTar reads every header of the tar archive in data. Gzip
// compression is detected from the magic bytes; anything else is read as
// an uncompressed tar. An empty buffer, a bad gzip stream or a corrupt
// header fail with ARCHIVE_FORMAT.
func OpenTar(data []byte) (*Tar, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeArchiveFormat, "empty tar archive")
	}

	t := &Tar{data: data, gzipped: bytes.HasPrefix(data, gzipMagic)}
	err := t.walk(func(i int, h *tar.Header, _ *tar.Reader) (bool, error) {
		t.members = append(t.members, Member{
			Name:    strings.TrimSuffix(h.Name, "/"),
			owner:   t,
			index:   i,
			regular: h.FileInfo().Mode().IsRegular(),
		})
		return true, nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveFormat, err, "read tar headers")
	}
	return t, nil
}

// Members returns the archive entries in archive order.
func (t *Tar) Members() []Member {
	return t.members
}

// ReadMember returns the content of m. It fails with MEMBER_READ when
// the archive is closed, m belongs to another archive, m is not a
// regular file, or its data cannot be read.
func (t *Tar) ReadMember(m Member) ([]byte, error) {
	switch {
	case t.closed:
		return nil, errors.New(errors.ErrCodeMemberRead, "archive is closed")
	case m.owner != t:
		return nil, errors.New(errors.ErrCodeMemberRead, "member %q does not belong to this archive", m.Name)
	case !m.regular:
		return nil, errors.New(errors.ErrCodeMemberRead, "member %q is not a regular file", m.Name)
	}

	var content []byte
	found := false
	err := t.walk(func(i int, _ *tar.Header, tr *tar.Reader) (bool, error) {
		if i < m.index {
			return true, nil
		}
		b, err := io.ReadAll(tr)
		if err != nil {
			return false, err
		}
		content, found = b, true
		return false, nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMemberRead, err, "read member %q", m.Name)
	}
	if !found {
		return nil, errors.New(errors.ErrCodeMemberRead, "member %q not found", m.Name)
	}
	return content, nil
}

// Close releases the archive. Members can no longer be read afterwards.
// Calling Close more than once is harmless.
func (t *Tar) Close() error {
	t.closed = true
	t.members = nil
	t.data = nil
	return nil
}

// walk opens a fresh reader over the buffer and calls fn for each header
// until fn returns false, the archive ends, or an error occurs. The
// decompressor is released before walk returns.
func (t *Tar) walk(fn func(i int, h *tar.Header, tr *tar.Reader) (bool, error)) error {
	var r io.Reader = bytes.NewReader(t.data)
	if t.gzipped {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return err
		}
		defer zr.Close()
		r = zr
	}

	tr := tar.NewReader(r)
	for i := 0; ; i++ {
		h, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		more, err := fn(i, h, tr)
		if err != nil || !more {
			return err
		}
	}
}
