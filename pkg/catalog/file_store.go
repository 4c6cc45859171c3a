package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ai-voiceshop-be/internal/apperr"
	"ai-voiceshop-be/internal/entity"
	"ai-voiceshop-be/internal/pkg/logger"
)

// FileStore keeps the product catalog in a single JSON file, re-read and
// re-written wholesale on every mutation. File order is the catalog's
// presentation order, which the lexical retriever relies on for tie-breaks.
type FileStore struct {
	path string
	log  logger.ILogger
	mu   sync.Mutex
}

func NewFileStore(path string, log logger.ILogger) *FileStore {
	return &FileStore{path: path, log: log}
}

// List returns the catalog in file order. A missing file is an empty catalog.
func (s *FileStore) List(_ context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Get(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Id == id {
			return &products[i], nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("product %s not found", id))
}

// Upsert validates the product and replaces an existing entry by id, or
// appends it at the end of the catalog.
func (s *FileStore) Upsert(_ context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.read()
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].Id == product.Id {
			products[i] = *product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, *product)
	}

	if err := s.write(products); err != nil {
		return err
	}
	s.log.Debug("catalog", "product upserted", map[string]interface{}{
		"product_id": product.Id,
		"replaced":   replaced,
	})
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.read()
	if err != nil {
		return err
	}

	out := products[:0]
	found := false
	for _, p := range products {
		if p.Id == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return apperr.New(apperr.KindNotFound, fmt.Sprintf("product %s not found", id))
	}
	return s.write(out)
}

func (s *FileStore) read() ([]entity.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.Product{}, nil
		}
		return nil, apperr.Wrap(apperr.KindUnknown, "reading catalog file", err)
	}
	if len(data) == 0 {
		return []entity.Product{}, nil
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, apperr.Wrap(apperr.KindDataCorruption, "catalog file unreadable", err)
	}
	return products, nil
}

// write replaces the catalog file atomically via a temp file rename.
func (s *FileStore) write(products []entity.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "encoding catalog", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Wrap(apperr.KindUnknown, "creating catalog directory", err)
	}
	tmp, err := os.CreateTemp(dir, "catalog-*.json")
	if err != nil {
		return apperr.Wrap(apperr.KindUnknown, "creating temp catalog file", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperr.Wrap(apperr.KindUnknown, "writing catalog file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperr.Wrap(apperr.KindUnknown, "closing catalog file", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperr.Wrap(apperr.KindUnknown, "replacing catalog file", err)
	}
	return nil
}
