package render

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	tempDirPattern = "firehosegenrender"
)

// File is a rendered file to be written to the filesystem.
type File struct {
	Path    string
	Content string
}

// ToTempDir writes the rendered files to a temporary directory.
// It's the caller's responsibility to delete the directory.
// This package provides a helper function Cleanup for that purpose.
func ToTempDir(files ...File) (*string, error) {
	d, err := CreateTempDir()
	if err != nil {
		return nil, err
	}

	dir := *d

	if _, err := ToDir(dir, files...); err != nil {
		return nil, err
	}

	return d, nil
}

// ToDir writes the rendered files to the given directory.
// It returns the list of the files written to the directory.
func ToDir(dir string, files ...File) ([]string, error) {
	var wrote []string

	for _, f := range files {
		p := filepath.Join(dir, f.Path)
		d := filepath.Dir(p)

		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, err
		}

		if err := os.WriteFile(p, []byte(f.Content), 0644); err != nil {
			return nil, err
		}

		wrote = append(wrote, f.Path)
	}

	return wrote, nil
}

func CreateTempDir() (*string, error) {
	d, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func Cleanup(dir *string) error {
	if dir == nil {
		return nil
	}

	if *dir == "" {
		return nil
	}

	if !strings.Contains(*dir, tempDirPattern) {
		return nil
	}

	return os.RemoveAll(*dir)
}
