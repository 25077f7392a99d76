package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how a source file is read.
type Options struct {
	// Delimiter for delimited text. If 0, chosen from the file extension.
	Delimiter rune
	// Sheet selects a worksheet for .xlsx inputs; empty means the first sheet.
	Sheet string
	// Logger receives failures to close the source file. Nil uses slog.Default.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Loader reads one kind of source file into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on filename and reads the whole file.
// Delimited text is the fallback for unknown extensions.
func Load(path string, opt Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InputNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &InputNotFoundError{Path: path, Err: errors.New("is a directory")}
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return csvLoader{}.Load(path, opt)
}

func init() {
	Register(xlsxLoader{})
	Register(csvLoader{})
}

func tableName(path string) string {
	return filepath.Base(path)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func openErr(path string, err error) error {
	if os.IsNotExist(err) || os.IsPermission(err) {
		return &InputNotFoundError{Path: path, Err: err}
	}
	return fmt.Errorf("open %s: %w", filepath.Base(path), err)
}
