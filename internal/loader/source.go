package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Source is the filesystem a Loader reads listings from and writes exports to.
type Source interface {
	// ReadDir returns the direct children of a directory. Per-entry metadata
	// is resolved lazily through fs.DirEntry.Info. A non-nil error with
	// non-empty entries means the listing was cut short.
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// BillySource adapts a go-billy filesystem.
type BillySource struct {
	fs billy.Filesystem
}

// NewBillySource wraps fsys.
func NewBillySource(fsys billy.Filesystem) *BillySource {
	return &BillySource{fs: fsys}
}

// NewMemorySource returns a source backed by an in-memory filesystem.
func NewMemorySource() *BillySource {
	return NewBillySource(memfs.New())
}

// Raw returns the underlying go-billy filesystem.
//
//nolint:ireturn // exposes the adapter target for fixtures.
func (b *BillySource) Raw() billy.Filesystem {
	return b.fs
}

// ReadDir implements Source.ReadDir. go-billy resolves metadata eagerly, so
// every returned entry already carries its FileInfo.
func (b *BillySource) ReadDir(name string) ([]fs.DirEntry, error) {
	// memfs lists a regular file as an empty directory.
	fi, err := b.fs.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", name, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("billy: readdir %q: %w", name, syscall.ENOTDIR)
	}
	infos, err := b.fs.ReadDir(name)
	if err != nil {
		return nil, fmt.Errorf("billy: readdir %q: %w", name, err)
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

// ReadFile implements Source.ReadFile.
func (b *BillySource) ReadFile(name string) ([]byte, error) {
	data, err := util.ReadFile(b.fs, name)
	if err != nil {
		return nil, fmt.Errorf("billy: readfile %q: %w", name, err)
	}
	return data, nil
}

// WriteFile implements Source.WriteFile.
func (b *BillySource) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := util.WriteFile(b.fs, name, data, perm); err != nil {
		return fmt.Errorf("billy: writefile %q: %w", name, err)
	}
	return nil
}

// OSSource reads the host filesystem. File reads and writes go through a
// go-billy osfs rooted at "/"; directory enumeration uses os.ReadDir because
// osfs stats every child up front and fails the whole listing when a single
// entry cannot be stat'ed.
type OSSource struct {
	files *BillySource
}

// NewOSSource returns a source for the host filesystem.
func NewOSSource() *OSSource {
	return &OSSource{files: NewBillySource(osfs.New("/"))}
}

// ReadDir implements Source.ReadDir.
func (o *OSSource) ReadDir(name string) ([]fs.DirEntry, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	// On a mid-listing failure os.ReadDir returns what it read so far along
	// with the error; both are passed through.
	return os.ReadDir(abs)
}

// ReadFile implements Source.ReadFile.
func (o *OSSource) ReadFile(name string) ([]byte, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	return o.files.ReadFile(abs)
}

// WriteFile implements Source.WriteFile.
func (o *OSSource) WriteFile(name string, data []byte, perm os.FileMode) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", name, err)
	}
	// osfs creates missing parents on O_CREATE; exports must not.
	dir := filepath.Dir(abs)
	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("write %q: %w", abs, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("write %q: parent %q: %w", abs, dir, syscall.ENOTDIR)
	}
	return o.files.WriteFile(abs, data, perm)
}
