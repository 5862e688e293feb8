// Package backup copia el archivo de la base hacia y desde la carpeta de
// respaldo configurada (usualmente una carpeta sincronizada en la nube).
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/raizdiseno/crm-pyme/pkg/config"
)

// Nombre fijo del respaldo de cierre: cada respaldo pisa el anterior.
const backupName = "backup_crm.db"

// ErrNoFolder indica que no hay carpeta de respaldo configurada.
var ErrNoFolder = errors.New("no hay carpeta de respaldo configurada")

// Manager copia la base según la configuración de respaldo.
type Manager struct {
	storePath string
	cfg       config.BackupConfig
}

// NewManager construye el manager para el archivo de base dado.
func NewManager(storePath string, cfg config.BackupConfig) *Manager {
	return &Manager{storePath: storePath, cfg: cfg}
}

// Backup copia la base al respaldo de nombre fijo, reemplazando el anterior.
func (m *Manager) Backup() (string, error) {
	if !m.cfg.Configured() {
		return "", ErrNoFolder
	}
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("base de datos a respaldar: %w", err)
	}
	if err := os.MkdirAll(m.cfg.Folder, 0o755); err != nil {
		return "", fmt.Errorf("carpeta de respaldo: %w", err)
	}
	dst := filepath.Join(m.cfg.Folder, backupName)
	if err := copyFile(m.storePath, dst); err != nil {
		return "", fmt.Errorf("respaldar: %w", err)
	}
	return dst, nil
}

// Snapshot copia la base a un archivo con marca de tiempo, sin pisar nada.
func (m *Manager) Snapshot() (string, error) {
	if !m.cfg.Configured() {
		return "", ErrNoFolder
	}
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("base de datos a respaldar: %w", err)
	}
	if err := os.MkdirAll(m.cfg.Folder, 0o755); err != nil {
		return "", fmt.Errorf("carpeta de respaldo: %w", err)
	}
	name := fmt.Sprintf("crm_%s.db", time.Now().Format("20060102_150405"))
	dst := filepath.Join(m.cfg.Folder, name)
	if err := copyFile(m.storePath, dst); err != nil {
		return "", fmt.Errorf("crear snapshot: %w", err)
	}
	return dst, nil
}

// RestoreIfMissing recupera la base desde el respaldo de nombre fijo cuando
// el archivo local no existe (equipo nuevo o base borrada). Si no hay carpeta
// configurada, no hay respaldo o la base ya existe, no hace nada.
func (m *Manager) RestoreIfMissing() (bool, error) {
	if !m.cfg.Configured() {
		return false, nil
	}
	if _, err := os.Stat(m.storePath); err == nil {
		return false, nil
	}
	src := filepath.Join(m.cfg.Folder, backupName)
	if _, err := os.Stat(src); err != nil {
		return false, nil
	}
	if err := copyFile(src, m.storePath); err != nil {
		return false, fmt.Errorf("restaurar: %w", err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
