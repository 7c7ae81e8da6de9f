package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/internal/app/model"
)

// Object is a stored preview body
type Object struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MemoryPreviewStore holds previews in process memory and serves them under
// a URL prefix such as /api/v1/previews.
type MemoryPreviewStore struct {
	mu        sync.RWMutex
	objects   map[string]Object
	urlPrefix string
}

func NewMemoryPreviewStore(urlPrefix string) *MemoryPreviewStore {
	return &MemoryPreviewStore{
		objects:   make(map[string]Object),
		urlPrefix: urlPrefix,
	}
}

func (s *MemoryPreviewStore) Put(_ context.Context, filename, contentType string, data []byte) (model.Preview, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.objects[id] = Object{Filename: filename, ContentType: contentType, Data: data}
	s.mu.Unlock()
	return model.Preview{ID: id, URL: s.urlPrefix + "/" + id}, nil
}

func (s *MemoryPreviewStore) Release(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[id]; !ok {
		return ErrPreviewNotFound
	}
	delete(s.objects, id)
	return nil
}

// Open returns the stored preview for serving
func (s *MemoryPreviewStore) Open(id string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[id]
	if !ok {
		return Object{}, ErrPreviewNotFound
	}
	return obj, nil
}

// Len reports how many previews are live
func (s *MemoryPreviewStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
