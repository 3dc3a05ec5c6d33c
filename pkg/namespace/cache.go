package namespace

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/fabic/libcsdbg/pkg/symtab"
)

// defaultCacheCapacity bounds the lookup cache's growth when the caller
// does not supply an explicit capacity.
const defaultCacheCapacity = 4096

// lookupCache memoizes both positive and negative forward-lookup
// resolutions. It is backed by hashicorp/golang-lru rather than a
// hand-rolled tail-scanning slice, giving O(1) amortized lookups and
// MRU-biased eviction with a bounded capacity.
type lookupCache struct {
	c *lru.Cache
}

func newLookupCache(capacity int) *lookupCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	c, _ := lru.New(capacity)
	return &lookupCache{c: c}
}

// get returns the cached symbol for addr, and whether the cache holds an
// entry at all (a cached miss returns ok=true, sym.Resolved()=false).
func (lc *lookupCache) get(addr uintptr) (symtab.Symbol, bool) {
	v, ok := lc.c.Get(addr)
	if !ok {
		return symtab.Symbol{}, false
	}
	return v.(symtab.Symbol), true
}

// add records a resolution, positive or negative, for addr.
func (lc *lookupCache) add(addr uintptr, sym symtab.Symbol) {
	lc.c.Add(addr, sym)
}

func (lc *lookupCache) len() int {
	return lc.c.Len()
}
