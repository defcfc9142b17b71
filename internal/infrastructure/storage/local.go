package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"imageresizer/internal/domain/image"
)

const tmpPrefix = ".tmp-"

// Local is the staging directory holding originals and derived images.
// Every name it accepts is a plain basename inside root.
type Local struct {
	fs   afero.Fs
	root string
}

func New(fs afero.Fs, dir string) (*Local, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err = fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	return &Local{fs: fs, root: root}, nil
}

func (l *Local) Root() string { return l.root }

// Resolve maps name to its absolute path inside root. It never touches the
// filesystem; names carrying directory parts or leading dots are rejected.
func (l *Local) Resolve(name string) (string, error) {
	base := filepath.Base(name)
	if name == "" || base != name || strings.ContainsAny(name, `/\`) || strings.HasPrefix(base, ".") {
		return "", image.ErrInvalidPath
	}

	p, err := filepath.Abs(filepath.Join(l.root, base))
	if err != nil || !strings.HasPrefix(p, l.root+string(filepath.Separator)) {
		return "", image.ErrInvalidPath
	}

	return p, nil
}

// Write stores r under name. Data goes to a hidden temp file first and is
// renamed into place once fully written, so readers never see partial files.
func (l *Local) Write(name string, r io.Reader) (int64, error) {
	dst, err := l.Resolve(name)
	if err != nil {
		return 0, err
	}
	tmp := filepath.Join(l.root, tmpPrefix+name)

	f, err := l.fs.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = l.fs.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		_ = l.fs.Remove(tmp)
		return 0, fmt.Errorf("close %s: %w", name, err)
	}
	if err = l.fs.Rename(tmp, dst); err != nil {
		_ = l.fs.Remove(tmp)
		return 0, fmt.Errorf("rename %s: %w", name, err)
	}

	return n, nil
}

func (l *Local) Open(name string) (io.ReadCloser, error) {
	p, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return l.fs.Open(p)
}

func (l *Local) Remove(name string) error {
	p, err := l.Resolve(name)
	if err != nil {
		return err
	}
	return l.fs.Remove(p)
}

// HTTPFileSystem serves stored files for the /uploads route. Directories
// and hidden temp files are reported as missing.
func (l *Local) HTTPFileSystem() http.FileSystem {
	return filesOnly{fs: afero.NewHttpFs(l.fs).Dir(l.root)}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return nil, os.ErrNotExist
	}

	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil || st.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
