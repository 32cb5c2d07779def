// Package romloader reads DS game images from disk. Plain .nds files are read
// directly; ZIP, 7z, RAR and gzip archives are opened in place and their first
// .nds entry is used.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extensions are the ROM file extensions looked for inside archives.
var Extensions = []string{".nds"}

// PickerFilter lists every extension the file picker offers, without dots.
var PickerFilter = []string{"nds", "zip", "7z", "rar", "gz"}

// MaxSize is the largest image accepted. DS cartridges top out at 512 MiB.
const MaxSize = 512 << 20

var sizeLimit int64 = MaxSize

var (
	// ErrNoROMFile is returned when an archive holds no .nds entry.
	ErrNoROMFile = errors.New("no .nds file in archive")
	// ErrUnsupportedFormat is returned for files that are neither a ROM nor a known archive.
	ErrUnsupportedFormat = errors.New("not a DS ROM or supported archive")
	// ErrTooLarge is returned when an image is bigger than MaxSize.
	ErrTooLarge = errors.New("ROM exceeds maximum size")
)

// Container is the kind of file a ROM was read from.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerRaw
	ContainerZIP
	Container7z
	ContainerRAR
	ContainerGzip
)

func (c Container) String() string {
	switch c {
	case ContainerRaw:
		return "raw"
	case ContainerZIP:
		return "zip"
	case Container7z:
		return "7z"
	case ContainerRAR:
		return "rar"
	case ContainerGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// Archive reports whether the container needs unpacking.
func (c Container) Archive() bool {
	return c != ContainerRaw && c != ContainerUnknown
}

var signatures = []struct {
	magic []byte
	kind  Container
}{
	{[]byte{0x50, 0x4B, 0x03, 0x04}, ContainerZIP},
	{[]byte{0x50, 0x4B, 0x05, 0x06}, ContainerZIP}, // Empty archive
	{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, Container7z},
	{[]byte("Rar!"), ContainerRAR},
	{[]byte{0x1F, 0x8B}, ContainerGzip},
}

// ROM is a loaded game image.
type ROM struct {
	Data      []byte
	Name      string // Base name of the .nds file or archive entry
	Path      string // File the image was read from
	Container Container
}

// Title returns the ROM name without its extension.
func (r *ROM) Title() string {
	return strings.TrimSuffix(r.Name, filepath.Ext(r.Name))
}

// Load reads the ROM at path, unpacking it when path is an archive.
func Load(path string) (*ROM, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	var name string

	switch kind {
	case ContainerRaw:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open ROM: %w", err)
		}
		defer f.Close()
		data, err = readLimited(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read ROM: %w", err)
		}
		name = filepath.Base(path)
	case ContainerZIP:
		data, name, err = readZIP(path)
	case Container7z:
		data, name, err = read7z(path)
	case ContainerRAR:
		data, name, err = readRAR(path)
	case ContainerGzip:
		data, name, err = readGzip(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}

	return &ROM{Data: data, Name: name, Path: path, Container: kind}, nil
}

// Detect identifies the container by its leading bytes, falling back to the
// file extension.
func Detect(path string) (Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return ContainerUnknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ContainerUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	return sniff(header[:n], path), nil
}

func sniff(header []byte, path string) Container {
	for _, sig := range signatures {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.kind
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		return ContainerZIP
	case ".7z":
		return Container7z
	case ".rar":
		return ContainerRAR
	case ".gz":
		return ContainerGzip
	default:
		if isROMName(path) {
			return ContainerRaw
		}
	}
	return ContainerUnknown
}

// isROMName reports whether name ends in a ROM extension, ignoring case.
func isROMName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, sizeLimit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > sizeLimit {
		return nil, ErrTooLarge
	}
	return data, nil
}
