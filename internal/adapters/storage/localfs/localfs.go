package localfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage keeps uploaded files on the local disk under a base directory and
// returns /uploads/… paths the HTTP server exposes as static files.
type Storage struct{ dir string }

func New(dir string) *Storage { return &Storage{dir: dir} }

func (s *Storage) Save(path string, r io.Reader) (string, error) {
	rel := filepath.FromSlash(strings.TrimPrefix(path, "/"))
	full := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + strings.TrimPrefix(path, "/"), nil
}
