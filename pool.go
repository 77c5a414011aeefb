package pdubuf

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/pkg/errors"
)

// Allocator is the allocation hook a buffer's lifecycle runs through. The
// buffer type has no knowledge of how an Allocator satisfies an Acquire,
// only that it may fail under exhaustion, in which case acquisition fails
// rather than falling back to the general heap.
type Allocator interface {
	Acquire() (*ByteBuffer, error)
	Release(buf *ByteBuffer)
}

// Pool is a fixed-population buffer allocator. The whole population is
// allocated up front; Acquire and Release only move buffers on and off a
// free list, keeping the real-time path free of heap allocation. Acquire
// and Release are safe for concurrent use from multiple stack threads and
// never block waiting for a buffer.
type Pool struct {
	id       string
	profile  *Profile
	lock     *sync.Mutex
	freelist *queue.Queue
	size     int32
	busy     int32
	ii       InstrumentInstance
}

func NewPool(id string, profile *Profile) (*Pool, error) {
	if err := profile.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}
	pool := &Pool{
		id:       id,
		profile:  profile,
		lock:     new(sync.Mutex),
		freelist: queue.New(),
		size:     int32(profile.PoolSz),
		ii:       profile.i.NewInstance(id),
	}
	for i := 0; i < profile.PoolSz; i++ {
		pool.freelist.Add(newByteBuffer(profile.BufferSz, profile.HeadroomSz, profile.LatencyTracking, pool))
		pool.ii.Allocate(id)
	}
	registerPool(pool)
	return pool, nil
}

// Acquire hands out a referenced buffer, or fails when the population is
// exhausted.
func (self *Pool) Acquire() (*ByteBuffer, error) {
	self.lock.Lock()
	if self.freelist.Length() < 1 {
		self.lock.Unlock()
		self.ii.Exhausted(self.id)
		return nil, errors.Errorf("pool '%s' exhausted [%d/%d busy]", self.id, atomic.LoadInt32(&self.busy), self.size)
	}
	buf := self.freelist.Remove().(*ByteBuffer)
	self.lock.Unlock()
	buf.Ref()
	atomic.AddInt32(&self.busy, 1)
	self.ii.Acquire(self.id)
	return buf, nil
}

// Release returns a buffer to the free list. Callers normally reach this
// through ByteBuffer.Unref rather than directly.
func (self *Pool) Release(buf *ByteBuffer) {
	if latencyUs := buf.LatencyUs(); latencyUs > 0 {
		self.ii.LatencySample(self.id, latencyUs)
	}
	buf.Clear()
	atomic.StoreInt32(&buf.refs, 0)
	self.lock.Lock()
	self.freelist.Add(buf)
	self.lock.Unlock()
	atomic.AddInt32(&self.busy, -1)
	self.ii.Release(self.id)
}

func (self *Pool) Id() string {
	return self.id
}

func (self *Pool) Size() int {
	return int(self.size)
}

// Busy reports how many buffers are currently out of the pool.
func (self *Pool) Busy() int {
	return int(atomic.LoadInt32(&self.busy))
}

func (self *Pool) Free() int {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.freelist.Length()
}

// Close unregisters the pool and shuts its instrumentation down. Buffers
// still outstanding keep their backing storage; they just have nowhere to
// return to.
func (self *Pool) Close() {
	unregisterPool(self)
	self.ii.Shutdown()
}
