package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/anirudhraja/parcelite/schema"
)

// LoadDir recursively scans a directory for *.yaml / *.yml schema
// descriptor files and registers every object they define.
func (r *Registry) LoadDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "path does not exist")
	}

	if !info.IsDir() {
		return r.LoadFile(path)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSchemaFile(p) {
			return nil
		}
		if err := r.LoadFile(p); err != nil {
			return errors.Wrapf(err, "failed to load schema file %s", p)
		}
		return nil
	})
}

// LoadFile loads and registers a single YAML schema descriptor file.
func (r *Registry) LoadFile(path string) error {
	if !isSchemaFile(path) {
		return errors.Errorf("file %s is not a schema file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read file")
	}

	file := &schema.File{}
	if err := yaml.Unmarshal(content, file); err != nil {
		return errors.Wrap(err, "failed to parse schema file")
	}
	if file.Name == "" {
		file.Name = filepath.Base(path)
	}

	return r.RegisterFile(file)
}

func isSchemaFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
