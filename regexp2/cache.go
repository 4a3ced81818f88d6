// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package regexp2

import (
	"sync"

	"github.com/dchest/siphash"
)

const (
	k0, k1 = 0, 1
)

// Cache keeps up to a fixed number of compiled
// expressions, evicting the oldest first. A
// Cache is safe for concurrent use; compile
// errors are not cached.
type Cache struct {
	opts Options

	lock    sync.Mutex
	size    int
	entries map[uint64][]*Regexp
	order   []uint64 // insertion order of hashes
	hits    int
	misses  int
}

// NewCache returns a Cache holding at most
// size expressions compiled with opts.
func NewCache(size int, opts Options) *Cache {
	if size <= 0 {
		size = 1
	}
	return &Cache{
		opts:    opts,
		size:    size,
		entries: make(map[uint64][]*Regexp),
	}
}

func hashExpr(expr string) uint64 {
	return siphash.Hash(k0, k1, []byte(expr))
}

// lookup must be called with c.lock held.
func (c *Cache) lookup(h uint64, expr string) *Regexp {
	for _, re := range c.entries[h] {
		if re.expr == expr {
			return re
		}
	}
	return nil
}

// Compile returns the cached automaton for
// expr, compiling it on a miss.
func (c *Cache) Compile(expr string) (*Regexp, error) {
	h := hashExpr(expr)
	c.lock.Lock()
	if re := c.lookup(h, expr); re != nil {
		c.hits++
		c.lock.Unlock()
		return re, nil
	}
	c.misses++
	c.lock.Unlock()

	// compile without the lock held; a concurrent
	// miss on the same expr may compile it twice
	re, err := CompileOptions(expr, c.opts)
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	if old := c.lookup(h, expr); old != nil {
		return old, nil
	}
	if len(c.order) >= c.size {
		c.evict()
	}
	c.entries[h] = append(c.entries[h], re)
	c.order = append(c.order, h)
	return re, nil
}

// evict drops the oldest entry.
func (c *Cache) evict() {
	h := c.order[0]
	c.order = c.order[1:]
	bucket := c.entries[h]
	if len(bucket) <= 1 {
		delete(c.entries, h)
		return
	}
	c.entries[h] = bucket[1:]
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.order)
}

// Stats returns the number of hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.hits, c.misses
}
