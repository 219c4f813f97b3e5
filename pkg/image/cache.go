// Package image renders photos to the terminal and applies the gallery's
// canvas filters. It picks between go-termimg protocols and a half-block
// fallback, caches rendered output, and renders off the UI goroutine.
package image

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"sync"
)

// CacheKey identifies rendered output by protocol, target size and image
// content.
type CacheKey struct {
	Protocol string
	Width    int
	Height   int
	Hash     [32]byte
}

// String returns a short form of the key for logs.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%dx%d:%x", k.Protocol, k.Width, k.Height, k.Hash[:6])
}

// CacheStats reports cache activity.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
	SizeBytes int64
}

type cacheEntry struct {
	key      CacheKey
	rendered string
}

// Cache is a size-bounded LRU of rendered strings. It is safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	items    map[CacheKey]*list.Element
	order    *list.List // front is most recent
	maxBytes int64
	used     int64
	stats    CacheStats
}

// NewCache returns a cache holding up to maxMB megabytes of output. A
// non-positive size selects 32 MB.
func NewCache(maxMB int) *Cache {
	if maxMB <= 0 {
		maxMB = 32
	}
	return &Cache{
		items:    make(map[CacheKey]*list.Element),
		order:    list.New(),
		maxBytes: int64(maxMB) << 20,
	}
}

// Get returns the cached output for key and marks it recently used.
func (c *Cache) Get(key CacheKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return "", false
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	return el.Value.(*cacheEntry).rendered, true
}

// Put stores output for key, evicting least recently used entries until it
// fits.
func (c *Cache) Put(key CacheKey, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*cacheEntry)
		c.used += int64(len(rendered) - len(e.rendered))
		e.rendered = rendered
		c.order.MoveToFront(el)
	} else {
		c.items[key] = c.order.PushFront(&cacheEntry{key: key, rendered: rendered})
		c.used += int64(len(rendered))
	}

	for c.used > c.maxBytes && c.order.Len() > 1 {
		back := c.order.Back()
		e := c.order.Remove(back).(*cacheEntry)
		delete(c.items, e.key)
		c.used -= int64(len(e.rendered))
		c.stats.Evictions++
	}
}

// Invalidate drops every entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[CacheKey]*list.Element)
	c.order.Init()
	c.used = 0
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = c.order.Len()
	s.SizeBytes = c.used
	return s
}

// hashImage hashes the image size and pixels. Images above 256x256 are
// sampled on a 32x32 grid.
func hashImage(img image.Image) [32]byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	hasher := sha256.New()
	var dim [8]byte
	binary.LittleEndian.PutUint32(dim[:4], uint32(w))
	binary.LittleEndian.PutUint32(dim[4:], uint32(h))
	hasher.Write(dim[:])

	var px [4]byte
	write := func(x, y int) {
		r, g, bl, a := img.At(x, y).RGBA()
		px[0], px[1], px[2], px[3] = uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8)
		hasher.Write(px[:])
	}

	if w*h <= 256*256 {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				write(x, y)
			}
		}
	} else {
		for sy := 0; sy < 32; sy++ {
			for sx := 0; sx < 32; sx++ {
				write(b.Min.X+sx*w/32, b.Min.Y+sy*h/32)
			}
		}
	}

	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}
