// SPDX-License-Identifier: Apache-2.0

package transcribe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache memoizes transcription responses as JSON files so re-running a
// story skips the API call. The key covers the audio path and the
// backend/model name; changing either invalidates the entry.
type Cache struct {
	dir string
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) entryPath(audioPath, backendName string) string {
	sum := sha256.Sum256([]byte(backendName + "\x00" + audioPath))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+".json")
}

// Get returns the cached transcript for the audio/backend pair, if any.
func (c *Cache) Get(audioPath, backendName string) (Transcript, bool) {
	data, err := os.ReadFile(c.entryPath(audioPath, backendName))
	if err != nil {
		return Transcript{}, false
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil || len(t.Segments) == 0 {
		return Transcript{}, false
	}
	return t, true
}

// Put stores a transcript for the audio/backend pair.
func (c *Cache) Put(audioPath, backendName string, t Transcript) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.entryPath(audioPath, backendName), data, 0o644)
}

// cachedBackend consults the cache before delegating.
type cachedBackend struct {
	inner Backend
	cache *Cache
}

// WithCache wraps a backend with read-through caching. A nil cache
// returns the backend unchanged.
func WithCache(b Backend, c *Cache) Backend {
	if c == nil {
		return b
	}
	return &cachedBackend{inner: b, cache: c}
}

func (b *cachedBackend) Name() string { return b.inner.Name() }

func (b *cachedBackend) Transcribe(ctx context.Context, audioPath string) (Transcript, error) {
	if t, ok := b.cache.Get(audioPath, b.inner.Name()); ok {
		return t, nil
	}
	t, err := b.inner.Transcribe(ctx, audioPath)
	if err != nil {
		return Transcript{}, err
	}
	if err := b.cache.Put(audioPath, b.inner.Name(), t); err != nil {
		return Transcript{}, fmt.Errorf("caching transcript: %w", err)
	}
	return t, nil
}
