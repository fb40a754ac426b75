package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// zipHeaderSize is the 8 opaque bytes and the u32 zip offset that open a
// zipped save.
const zipHeaderSize = 12

// ZipEntry is one named stream of a zipped save.
type ZipEntry struct {
	Name string
	Data []byte
}

// ZipFrame is everything in a zipped save outside the archive itself.
type ZipFrame struct {
	Prefix [8]byte
	// Gap holds the raw bytes between the header and the archive.
	Gap []byte
	// Names lists the archive entries in file order.
	Names []string
}

// SplitZip parses a zipped save and returns its frame and entries.
func SplitZip(data []byte) (*ZipFrame, []ZipEntry, error) {
	d := unreal.NewDecoder(data)
	f := &ZipFrame{}

	prefix, err := d.Bytes(8)
	if err != nil {
		return nil, nil, fmt.Errorf("read prefix: %w", err)
	}
	copy(f.Prefix[:], prefix)
	offset, err := d.U32()
	if err != nil {
		return nil, nil, fmt.Errorf("read zip offset: %w", err)
	}
	if offset < zipHeaderSize {
		return nil, nil, d.Errorf(ErrDecompression, "zip offset %d inside header", offset)
	}
	if f.Gap, err = d.Blob(offset - zipHeaderSize); err != nil {
		return nil, nil, fmt.Errorf("read gap: %w", err)
	}

	archive := d.Cursor().ReadToEnd()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open zip: %v", ErrDecompression, err)
	}

	entries := make([]ZipEntry, 0, len(zr.File))
	for _, zf := range zr.File {
		b, err := readZipFile(zf)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecompression, zf.Name, err)
		}
		entries = append(entries, ZipEntry{Name: zf.Name, Data: b})
		f.Names = append(f.Names, zf.Name)
	}
	glog.V(2).Infof("zipped save: %d entries at offset %d", len(entries), offset)
	return f, entries, nil
}

func readZipFile(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Bytes rebuilds the zipped save from entries. The archive is written with
// DEFLATE and zeroed timestamps, so equal entries give equal output.
func (f *ZipFrame) Bytes(entries []ZipEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(f.Prefix[:])
	var off [4]byte
	n := uint32(zipHeaderSize + len(f.Gap))
	off[0], off[1], off[2], off[3] = byte(n), byte(n>>8), byte(n>>16), byte(n>>24)
	buf.Write(off[:])
	buf.Write(f.Gap)

	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// Lookup returns the data of the named entry.
func Lookup(entries []ZipEntry, name string) ([]byte, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Data, true
		}
	}
	return nil, false
}
