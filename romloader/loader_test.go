package romloader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// writeZip creates a zip holding the given entries in order.
func writeZip(t *testing.T, entries map[string][]byte, order ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range order {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
		fw.Write(entries[name])
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

func writeGzip(t *testing.T, fileName, headerName string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create gzip: %v", err)
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	w.Name = headerName
	w.Write(data)
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return path
}

func TestLoadRaw(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03, 0x04}
	path := writeFile(t, "Mario Kart.nds", want)

	rom, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(rom.Data, want) {
		t.Errorf("Data = %v, want %v", rom.Data, want)
	}
	if rom.Name != "Mario Kart.nds" || rom.Title() != "Mario Kart" {
		t.Errorf("Name = %q, Title = %q", rom.Name, rom.Title())
	}
	if rom.Container != ContainerRaw || rom.Path != path {
		t.Errorf("Container = %v, Path = %q", rom.Container, rom.Path)
	}
}

func TestLoadRawUppercaseExtension(t *testing.T) {
	rom, err := Load(writeFile(t, "GAME.NDS", []byte{9}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rom.Container != ContainerRaw {
		t.Errorf("Container = %v", rom.Container)
	}
}

func TestLoadZip(t *testing.T) {
	want := []byte{0xAA, 0xBB, 0xCC}
	path := writeZip(t, map[string][]byte{
		"readme.txt":          []byte("hi"),
		"roms/dir/puzzle.nds": want,
		"other.nds":           {0x00},
	}, "readme.txt", "roms/dir/puzzle.nds", "other.nds")

	rom, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(rom.Data, want) {
		t.Errorf("Data = %v, want first .nds entry", rom.Data)
	}
	if rom.Name != "puzzle.nds" {
		t.Errorf("Name = %q, want base name", rom.Name)
	}
	if rom.Container != ContainerZIP {
		t.Errorf("Container = %v", rom.Container)
	}
}

func TestLoadZipWithoutROM(t *testing.T) {
	path := writeZip(t, map[string][]byte{"readme.txt": []byte("hello")}, "readme.txt")

	_, err := Load(path)
	if !errors.Is(err, ErrNoROMFile) {
		t.Errorf("err = %v, want ErrNoROMFile", err)
	}
}

func TestLoadGzip(t *testing.T) {
	want := []byte{0x11, 0x22, 0x33}
	tests := []struct {
		name       string
		fileName   string
		headerName string
		wantName   string
	}{
		{"Header name", "x.gz", "Zelda.nds", "Zelda.nds"},
		{"From file name", "Zelda.nds.gz", "", "Zelda.nds"},
		{"Bare name gets extension", "Zelda.gz", "", "Zelda.nds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom, err := Load(writeGzip(t, tt.fileName, tt.headerName, want))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(rom.Data, want) {
				t.Errorf("Data = %v", rom.Data)
			}
			if rom.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", rom.Name, tt.wantName)
			}
		})
	}
}

func TestLoadTooLarge(t *testing.T) {
	old := sizeLimit
	sizeLimit = 4
	defer func() { sizeLimit = old }()

	tests := []struct {
		name string
		path string
	}{
		{"Raw", writeFile(t, "big.nds", []byte{1, 2, 3, 4, 5})},
		{"Gzip", writeGzip(t, "big.nds.gz", "", []byte{1, 2, 3, 4, 5})},
		{"Zip", writeZip(t, map[string][]byte{"big.nds": {1, 2, 3, 4, 5}}, "big.nds")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); !errors.Is(err, ErrTooLarge) {
				t.Errorf("err = %v, want ErrTooLarge", err)
			}
		})
	}

	rom, err := Load(writeFile(t, "fits.nds", []byte{1, 2, 3, 4}))
	if err != nil || len(rom.Data) != 4 {
		t.Errorf("image at the limit rejected: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want error
	}{
		{"Missing file", func(t *testing.T) string { return "/nonexistent/game.nds" }, nil},
		{"Unknown extension", func(t *testing.T) string { return writeFile(t, "notes.txt", []byte("x")) }, ErrUnsupportedFormat},
		{"Fake 7z", func(t *testing.T) string { return writeFile(t, "fake.7z", []byte("not a 7z file")) }, nil},
		{"Empty 7z", func(t *testing.T) string { return writeFile(t, "empty.7z", nil) }, nil},
		{"Fake rar", func(t *testing.T) string { return writeFile(t, "fake.rar", []byte("Rar!invalid")) }, nil},
		{"Empty rar", func(t *testing.T) string { return writeFile(t, "empty.rar", nil) }, nil},
		{"Fake gzip", func(t *testing.T) string { return writeFile(t, "fake.gz", []byte("plain")) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		header []byte
		path   string
		want   Container
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04}, "file.dat", ContainerZIP},
		{[]byte{0x50, 0x4B, 0x05, 0x06}, "file.dat", ContainerZIP},
		{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, "file.dat", Container7z},
		{[]byte("Rar!\x1a\x07"), "file.dat", ContainerRAR},
		{[]byte{0x1F, 0x8B, 0x08}, "file.dat", ContainerGzip},
		{nil, "game.nds", ContainerRaw},
		{nil, "game.NDS", ContainerRaw},
		{nil, "game.ZIP", ContainerZIP},
		{nil, "game.7z", Container7z},
		{nil, "game.rar", ContainerRAR},
		{nil, "game.gz", ContainerGzip},
		{nil, "game.gba", ContainerUnknown},
		{[]byte{0x50, 0x4B}, "short.dat", ContainerUnknown},
	}

	for _, tt := range tests {
		if got := sniff(tt.header, tt.path); got != tt.want {
			t.Errorf("sniff(%v, %q) = %v, want %v", tt.header, tt.path, got, tt.want)
		}
	}
}

func TestContainerArchive(t *testing.T) {
	tests := []struct {
		c    Container
		want bool
	}{
		{ContainerUnknown, false},
		{ContainerRaw, false},
		{ContainerZIP, true},
		{Container7z, true},
		{ContainerRAR, true},
		{ContainerGzip, true},
	}
	for _, tt := range tests {
		if got := tt.c.Archive(); got != tt.want {
			t.Errorf("%v.Archive() = %v, want %v", tt.c, got, tt.want)
		}
	}
}
