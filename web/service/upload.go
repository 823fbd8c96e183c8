package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"shopfront/logger"
)

// UploadService persists product images into the configured upload folder.
// File contents are treated as opaque bytes, never interpreted.
type UploadService struct {
	settingService SettingService
}

// Store writes the uploaded file and returns its stored filename. A missing
// file or a disallowed extension yields the placeholder filename without an
// error: the product is still created, just without a real image. Name
// collisions are not deduplicated, the last write wins.
func (s *UploadService) Store(file *multipart.FileHeader) (string, error) {
	fallback, err := s.settingService.GetDefaultProductImage()
	if err != nil {
		return "", err
	}
	if file == nil || file.Filename == "" {
		return fallback, nil
	}

	allowed, err := s.extensionAllowed(file.Filename)
	if err != nil {
		return "", err
	}
	if !allowed {
		logger.Debugf("discarding upload %q: extension not allowed", file.Filename)
		return fallback, nil
	}

	name := SecureFilename(file.Filename)
	if name == "" {
		logger.Debugf("discarding upload %q: empty name after sanitizing", file.Filename)
		return fallback, nil
	}

	folder, err := s.settingService.GetUploadFolder()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0o750); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// extensionAllowed checks the substring after the last dot, case-insensitive,
// against the configured allow-list.
func (s *UploadService) extensionAllowed(filename string) (bool, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false, nil
	}
	allowed, err := s.settingService.GetUploadExtensions()
	if err != nil {
		return false, err
	}
	return allowed[ext], nil
}

// SecureFilename reduces a client-supplied filename to a filesystem-safe
// basename: path separators are stripped and anything outside
// [A-Za-z0-9._-] is dropped, spaces become underscores.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return ""
	}
	return out
}
