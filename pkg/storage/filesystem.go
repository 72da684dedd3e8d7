package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/jqrt/pkg/catalog"
)

// ErrCatalogNotFound is returned when no catalog with the given name is installed.
var ErrCatalogNotFound = errors.New("catalog not found")

// FilesystemCatalogRepository stores installed conformance catalogs as YAML
// files named after the catalog, in <config dir>/catalogs.
type FilesystemCatalogRepository struct {
	baseDir string
}

// NewFilesystemCatalogRepository creates a repository rooted at
// <baseDir>/catalogs, creating the directory if needed.
func NewFilesystemCatalogRepository(baseDir string) (*FilesystemCatalogRepository, error) {
	catalogsDir := filepath.Join(baseDir, "catalogs")

	if err := os.MkdirAll(catalogsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalogs directory: %w", err)
	}

	return &FilesystemCatalogRepository{baseDir: catalogsDir}, nil
}

// Dir returns the directory holding the catalog files.
func (r *FilesystemCatalogRepository) Dir() string {
	return r.baseDir
}

// Save writes cat as <name>.yaml, replacing any catalog with the same name.
func (r *FilesystemCatalogRepository) Save(cat *catalog.Catalog) error {
	if cat == nil {
		return fmt.Errorf("cannot save nil catalog")
	}
	if err := checkName(cat.Name); err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cat)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog to YAML: %w", err)
	}

	filePath := r.catalogPath(cat.Name)
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to save catalog file: %w", err)
	}

	return nil
}

// Load reads and validates the installed catalog called name.
func (r *FilesystemCatalogRepository) Load(name string) (*catalog.Catalog, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	filePath := r.catalogPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}

	return catalog.Load(filePath)
}

// Delete removes the installed catalog called name.
func (r *FilesystemCatalogRepository) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	filePath := r.catalogPath(name)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrCatalogNotFound, name)
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete catalog file: %w", err)
	}
	return nil
}

// List returns every installed catalog sorted by name. Files that no longer
// validate are logged and skipped.
func (r *FilesystemCatalogRepository) List() ([]*catalog.Catalog, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogs directory: %w", err)
	}

	catalogs := make([]*catalog.Catalog, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		cat, err := catalog.Load(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping catalog %s: %v", entry.Name(), err)
			continue
		}
		catalogs = append(catalogs, cat)
	}

	sort.Slice(catalogs, func(i, j int) bool { return catalogs[i].Name < catalogs[j].Name })
	return catalogs, nil
}

func (r *FilesystemCatalogRepository) catalogPath(name string) string {
	return filepath.Join(r.baseDir, name+".yaml")
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("catalog name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid catalog name %q", name)
	}
	return nil
}
