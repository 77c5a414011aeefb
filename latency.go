package pdubuf

import "time"

// LatencyTracker records the instant a PDU entered the stack, so that any
// later stage can observe how long the PDU has been in flight. An
// un-captured (or disabled) tracker reports zero latency rather than
// failing, which keeps latency reads safe at every stage regardless of
// whether an earlier stage stamped the buffer.
type LatencyTracker struct {
	tp       time.Time
	captured bool
	disabled bool
}

func (self *LatencyTracker) Clear() {
	self.captured = false
}

// SetTimestamp captures "now".
func (self *LatencyTracker) SetTimestamp() {
	if self.disabled {
		return
	}
	self.tp = time.Now()
	self.captured = true
}

// SetTimestampAt captures an externally supplied instant, allowing a single
// ingress capture point to be propagated across stages.
func (self *LatencyTracker) SetTimestampAt(tp time.Time) {
	if self.disabled {
		return
	}
	self.tp = tp
	self.captured = true
}

func (self *LatencyTracker) Timestamp() time.Time {
	return self.tp
}

func (self *LatencyTracker) LatencyUs() int64 {
	if !self.captured {
		return 0
	}
	return time.Since(self.tp).Microseconds()
}

func (self *LatencyTracker) copyFrom(src *LatencyTracker) {
	// the disabled toggle is a property of this tracker's construction, not
	// of the copied state
	self.tp = src.tp
	self.captured = src.captured && !self.disabled
}
