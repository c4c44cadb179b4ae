package tickers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tradeterm/internal/logger"
)

var (
	// ErrNotFound reports a missing ticker file or base path.
	ErrNotFound = errors.New("not found")
	// ErrInvalidName reports a filename that is empty or escapes the base path.
	ErrInvalidName = errors.New("invalid filename")
)

// Service manages the watchlist files the charting layer consumes. Files are
// plain text, one under the configured base path per list.
type Service struct {
	basePath string
	log      *logger.Logger
}

func NewService(basePath string, log *logger.Logger) *Service {
	return &Service{basePath: basePath, log: log}
}

// File is one named watchlist with its raw content.
type File struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Get returns the named file, or every .txt file when filename is empty.
func (s *Service) Get(filename string) ([]File, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	if filename != "" {
		file, err := s.readOne(filename)
		if err != nil {
			return nil, err
		}
		return []File{file}, nil
	}
	return s.readAll()
}

// Save writes content to the named file, replacing what was there.
func (s *Service) Save(filename, content string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := validateName(filename); err != nil {
		return err
	}

	path := filepath.Join(s.basePath, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write ticker file %s: %w", filename, err)
	}

	s.log.WithComponent("tickers").WithField("filename", filename).Info("Ticker file saved.")
	return nil
}

func (s *Service) ensureDir() error {
	info, err := os.Stat(s.basePath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("ticker base path %s: %w", s.basePath, ErrNotFound)
	}
	return nil
}

func (s *Service) readOne(filename string) (File, error) {
	if err := validateName(filename); err != nil {
		return File{}, err
	}

	path := filepath.Join(s.basePath, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("ticker file %s: %w", filename, ErrNotFound)
	}
	return File{Filename: filename, Content: string(data)}, nil
}

func (s *Service) readAll() ([]File, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*.txt"))
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		files = append(files, File{Filename: filepath.Base(path), Content: string(data)})
	}
	return files, nil
}

// validateName rejects names that would escape the base path.
func validateName(filename string) error {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return fmt.Errorf("ticker filename %q: %w", filename, ErrInvalidName)
	}
	return nil
}
