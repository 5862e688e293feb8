package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Nombre del documento de configuración (config.json junto a la aplicación).
const fileName = "config.json"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde config.json).
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Backup BackupConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, production
	LogLevel string // trace, debug, info, warn, error
}

// StoreConfig configuración del archivo SQLite.
type StoreConfig struct {
	Path string // ruta del archivo de la base de datos
}

// BackupConfig configuración de respaldo.
// Folder vacío significa "sin carpeta configurada": el respaldo falla con error
// explícito y la restauración automática no hace nada.
type BackupConfig struct {
	Folder string
}

// Configured indica si hay una carpeta de respaldo definida.
func (c BackupConfig) Configured() bool {
	return c.Folder != ""
}

// Load lee config.json desde dir. Si el archivo no existe se devuelven los
// valores por defecto sin error (equivale a "sin configuración").
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("leer %s: %w", fileName, err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("env"),
			LogLevel: v.GetString("log_level"),
		},
		Store: StoreConfig{
			Path: v.GetString("db_path"),
		},
		Backup: BackupConfig{
			Folder: v.GetString("backup_folder"),
		},
	}
	return cfg, nil
}

// Save escribe la configuración completa en config.json dentro de dir,
// reemplazando el documento anterior.
func Save(dir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("env", cfg.App.Env)
	v.Set("log_level", cfg.App.LogLevel)
	v.Set("db_path", cfg.Store.Path)
	v.Set("backup_folder", cfg.Backup.Folder)

	if err := v.WriteConfigAs(filepath.Join(dir, fileName)); err != nil {
		return fmt.Errorf("guardar %s: %w", fileName, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "crm_pyme.db")
	v.SetDefault("backup_folder", "")
}
