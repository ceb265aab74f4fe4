package filestore

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/novabrowser/nova/pkg/ports"
)

// KV implements ports.KVStore in a single JSON file. Values round-trip
// through JSON, so numbers come back as float64.
type KV struct {
	path string

	mu   sync.Mutex
	data map[string]any
}

// NewKV opens (or creates) the key-value store inside dir.
func NewKV(dir string) (*KV, error) {
	kv := &KV{
		path: filepath.Join(dir, storageFile),
		data: make(map[string]any),
	}
	if err := loadJSON(kv.path, &kv.data); err != nil {
		return nil, err
	}
	if kv.data == nil {
		kv.data = make(map[string]any)
	}
	return kv, nil
}

func (kv *KV) Set(ctx context.Context, key string, value any) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return saveJSON(kv.path, kv.data)
}

func (kv *KV) Get(ctx context.Context, key string) (any, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	value, ok := kv.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return value, nil
}

func (kv *KV) Keys(ctx context.Context) ([]string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	keys := make([]string, 0, len(kv.data))
	for k := range kv.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
