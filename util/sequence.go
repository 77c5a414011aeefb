package util

import (
	"math"
	"sync/atomic"
)

// Sequence generates protocol sequence numbers, wrapping at the configured
// modulus (PDCP sequence spaces are 12 or 18 bits wide). A zero modulus
// selects the full uint32 sequence space.
type Sequence struct {
	nextValue uint32
	modulus   uint32
}

func NewSequence(modulus uint32) *Sequence {
	if modulus < 1 {
		modulus = math.MaxUint32
	}
	return &Sequence{modulus: modulus}
}

func (self *Sequence) ResetTo(nextValue uint32) {
	atomic.StoreUint32(&self.nextValue, nextValue%self.modulus)
}

func (self *Sequence) Next() uint32 {
	for {
		current := atomic.LoadUint32(&self.nextValue)
		next := (current + 1) % self.modulus
		if atomic.CompareAndSwapUint32(&self.nextValue, current, next) {
			return current
		}
	}
}
