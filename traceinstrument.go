package pdubuf

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type traceInstrument struct {
	config *traceInstrumentConfig
}

type traceInstrumentConfig struct {
	Allocation bool `yaml:"allocation"`
	Lifecycle  bool `yaml:"lifecycle"`
	Latency    bool `yaml:"latency"`
}

type traceInstrumentInstance struct {
	id   string
	lock *sync.Mutex
	i    *traceInstrument
}

func NewTraceInstrument(config map[string]interface{}) (Instrument, error) {
	i := &traceInstrument{
		config: &traceInstrumentConfig{Allocation: true, Lifecycle: true, Latency: true},
	}
	if err := loadInstrumentConfig(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	return i, nil
}

func (self *traceInstrument) NewInstance(id string) InstrumentInstance {
	return &traceInstrumentInstance{id, new(sync.Mutex), self}
}

/*
 * pool population
 */
func (self *traceInstrumentInstance) Allocate(id string) {
	if self.i.config.Allocation {
		self.trace(fmt.Sprintf("&& %-24s ALLOCATE", id))
	}
}

/*
 * buffer lifecycle
 */
func (self *traceInstrumentInstance) Acquire(id string) {
	if self.i.config.Lifecycle {
		self.trace(fmt.Sprintf("&& %-24s ACQUIRE", id))
	}
}

func (self *traceInstrumentInstance) Release(id string) {
	if self.i.config.Lifecycle {
		self.trace(fmt.Sprintf("&& %-24s RELEASE", id))
	}
}

func (self *traceInstrumentInstance) Exhausted(id string) {
	if self.i.config.Lifecycle {
		self.trace(fmt.Sprintf("&& %-24s EXHAUSTED", id))
	}
}

/*
 * latency
 */
func (self *traceInstrumentInstance) LatencySample(id string, latencyUs int64) {
	if self.i.config.Latency {
		self.trace(fmt.Sprintf("&& %-24s LATENCY %d us", id, latencyUs))
	}
}

/*
 * instrument lifecycle
 */
func (self *traceInstrumentInstance) Shutdown() {
	logrus.Infof("[%s] shutdown", self.id)
}

func (self *traceInstrumentInstance) trace(msg string) {
	self.lock.Lock()
	fmt.Println(msg)
	self.lock.Unlock()
}
