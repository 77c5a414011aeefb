package pdubuf

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// Live pools register themselves so tooling can enumerate them and report
// utilization without holding pool references of its own.
var registryLock sync.Mutex
var registry = treemap.NewWithStringComparator()

func registerPool(p *Pool) {
	registryLock.Lock()
	registry.Put(p.id, p)
	registryLock.Unlock()
}

func unregisterPool(p *Pool) {
	registryLock.Lock()
	registry.Remove(p.id)
	registryLock.Unlock()
}

// Pools returns the live pools, sorted by id.
func Pools() []*Pool {
	registryLock.Lock()
	defer registryLock.Unlock()
	out := make([]*Pool, 0, registry.Size())
	registry.Each(func(_ interface{}, v interface{}) {
		out = append(out, v.(*Pool))
	})
	return out
}
