package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/burnishapp/burnish/pkg/lifecycle"
)

type memoryBlob struct {
	data        []byte
	contentType string
}

// Memory is an in-memory System for tests and local development. It
// honors the same key validation and not-found semantics as the Azure
// implementation.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

// NewMemory creates an empty in-memory storage system.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]memoryBlob)}
}

var _ System = (*Memory)(nil)

func (m *Memory) Start(lc *lifecycle.Coordinator) error {
	return nil
}

func (m *Memory) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = memoryBlob{data: data, contentType: contentType}
	return nil
}

func (m *Memory) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := m.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", err
	}
	return m.URL(key), nil
}

func (m *Memory) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, err := m.DownloadBytes(ctx, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}

	data := make([]byte, len(b.data))
	copy(data, b.data)
	return data, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[key]; !ok {
		return ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *Memory) URL(key string) string {
	return "memory://" + key
}
