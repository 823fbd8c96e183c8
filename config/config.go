// Package config exposes process-level configuration for the storefront:
// embedded name/version, environment variable lookups with defaults, and an
// optional TOML override file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// fileConfig mirrors the recognized keys of the optional TOML config file.
// Environment variables take precedence over file values.
type fileConfig struct {
	DBFolder     string `toml:"db_folder"`
	LogFolder    string `toml:"log_folder"`
	UploadFolder string `toml:"upload_folder"`
}

var fileCfg fileConfig

func init() {
	loadConfigFile()
}

func loadConfigFile() {
	path := os.Getenv("SHOP_CONFIG")
	if path == "" {
		path = "shopfront.toml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		// The config file is optional.
		return
	}
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config file %s: %v\n", path, err)
	}
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("SHOP_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SHOP_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("SHOP_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = fileCfg.DBFolder
	}
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("SHOP_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = fileCfg.LogFolder
	}
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetUploadFolder is the startup default for the product image folder; the
// runtime value lives in the settings table and may be changed there.
func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("SHOP_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = fileCfg.UploadFolder
	}
	if uploadFolderPath == "" {
		uploadFolderPath = "uploads"
	}
	return uploadFolderPath
}
