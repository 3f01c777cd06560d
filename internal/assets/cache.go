// Package assets sources texture images for the renderer: local files are
// read directly, remote URLs are fetched over HTTP and cached on disk.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache fetches remote assets with an on-disk cache, deduplicating
// concurrent fetches of the same URL.
type Cache struct {
	cacheDir   string
	client     *http.Client
	inFlight   map[string]chan struct{}
	inFlightMu sync.Mutex
	fetchQueue chan string
	wg         sync.WaitGroup
}

// NewCache creates an asset cache rooted at cacheDir with the given number
// of background prefetch workers.
func NewCache(cacheDir string, workers int) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		cacheDir: cacheDir,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		inFlight:   make(map[string]chan struct{}),
		fetchQueue: make(chan string, 100),
	}

	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}

	return c, nil
}

func (c *Cache) worker() {
	defer c.wg.Done()
	for url := range c.fetchQueue {
		c.fetch(url)
	}
}

// Close shuts down the prefetch workers.
func (c *Cache) Close() {
	close(c.fetchQueue)
	c.wg.Wait()
}

// assetPath returns the on-disk path for a cached URL. The name is hashed
// from the full URL, but the extension comes from the path alone so query
// strings and fragments never leak into filenames.
func (c *Cache) assetPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	path := url
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:])+filepath.Ext(path))
}

// Load returns the bytes of pathOrURL: http(s) URLs go through the cache,
// anything else is read as a local file.
func (c *Cache) Load(pathOrURL string) ([]byte, error) {
	if isURL(pathOrURL) {
		return c.Get(pathOrURL)
	}
	return os.ReadFile(pathOrURL)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get returns the asset at url, fetching and caching it if necessary.
func (c *Cache) Get(url string) ([]byte, error) {
	if data, err := os.ReadFile(c.assetPath(url)); err == nil {
		return data, nil
	}
	return c.fetch(url)
}

// fetch downloads an asset and caches it on disk.
func (c *Cache) fetch(url string) ([]byte, error) {
	path := c.assetPath(url)

	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	// Collapse concurrent fetches of the same URL onto one request.
	c.inFlightMu.Lock()
	if ch, exists := c.inFlight[url]; exists {
		c.inFlightMu.Unlock()
		<-ch
		return os.ReadFile(path)
	}
	ch := make(chan struct{})
	c.inFlight[url] = ch
	c.inFlightMu.Unlock()

	defer func() {
		c.inFlightMu.Lock()
		delete(c.inFlight, url)
		close(ch)
		c.inFlightMu.Unlock()
	}()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "SpriteView/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset data: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		// Log but don't fail - we still have the data
		fmt.Printf("Warning: failed to cache asset: %v\n", err)
	}

	return data, nil
}

// Prefetch queues assets for background fetching so a later Load or Get
// finds them on disk or joins the in-flight request. Non-URL entries are
// skipped (local files need no warming); full queues drop requests rather
// than block.
func (c *Cache) Prefetch(pathsOrURLs ...string) {
	for _, p := range pathsOrURLs {
		if !isURL(p) {
			continue
		}
		select {
		case c.fetchQueue <- p:
		default:
		}
	}
}

// IsCached checks whether a URL is already on disk.
func (c *Cache) IsCached(url string) bool {
	_, err := os.Stat(c.assetPath(url))
	return err == nil
}
