// Package session persiste el indicador de sesión del tablero (equivalente al almacenamiento local del cliente).
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/rice-stock/internal/domain/repository"
)

var _ repository.LoginFlagStore = (*FileStore)(nil)

const flagValue = "true"

// FileStore guarda el indicador como un archivo con el contenido "true"; ausencia = sin sesión.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el store sobre path (se crea el directorio al guardar).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("session.Load: %w", err)
	}
	return strings.TrimSpace(string(b)) == flagValue, nil
}

func (s *FileStore) Save(_ context.Context, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !loggedIn {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("session.Save: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session.Save mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(flagValue), 0o600); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	return os.Rename(tmp, s.path)
}
