package archive

import (
	"bytes"

	"github.com/klauspost/compress/zip"

	"github.com/matzehuels/pthscan/pkg/errors"
)

// ListZip returns the member names of the zip archive in data, in
// central directory order.
func ListZip(data []byte) ([]string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveFormat, err, "open zip")
	}
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}
