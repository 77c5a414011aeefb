package pdubuf

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openlte/pdubuf/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MetricsWriter is implemented by instruments able to flush their collected
// samples to disk on demand.
type MetricsWriter interface {
	WriteAllSamples() error
}

type metricsInstrument struct {
	lock      *sync.Mutex
	config    *metricsInstrumentConfig
	instances []*metricsInstrumentInstance
}

type metricsInstrumentConfig struct {
	Path       string `yaml:"path"`
	SnapshotMs int    `yaml:"snapshot_ms"`
}

func NewMetricsInstrument(config map[string]interface{}) (Instrument, error) {
	i := &metricsInstrument{
		lock: new(sync.Mutex),
		config: &metricsInstrumentConfig{
			SnapshotMs: 1000,
		},
	}
	if err := loadInstrumentConfig(config, i.config); err != nil {
		return nil, errors.Wrap(err, "unable to load config")
	}
	if i.config.Path == "" {
		return nil, errors.New("missing 'path'")
	}
	return i, nil
}

func (self *metricsInstrument) NewInstance(id string) InstrumentInstance {
	self.lock.Lock()
	defer self.lock.Unlock()
	ii := &metricsInstrumentInstance{id: id, lock: new(sync.Mutex), close: make(chan struct{}, 1)}
	go ii.snapshotter(self.config.SnapshotMs)
	self.instances = append(self.instances, ii)
	return ii
}

func (self *metricsInstrument) WriteAllSamples() error {
	self.lock.Lock()
	defer self.lock.Unlock()

	for _, ii := range self.instances {
		if err := os.MkdirAll(self.config.Path, os.ModePerm); err != nil {
			return err
		}
		outPath, err := ioutil.TempDir(self.config.Path, fmt.Sprintf("%s_", ii.id))
		if err != nil {
			return err
		}
		logrus.Infof("writing metrics to: %s", outPath)

		ii.lock.Lock()
		err = writeInstanceSamples(ii, outPath)
		ii.lock.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeInstanceSamples(ii *metricsInstrumentInstance, outPath string) error {
	if err := util.WriteSamples("allocations", outPath, ii.allocations); err != nil {
		return err
	}
	if err := util.WriteSamples("acquires", outPath, ii.acquires); err != nil {
		return err
	}
	if err := util.WriteSamples("releases", outPath, ii.releases); err != nil {
		return err
	}
	if err := util.WriteSamples("exhaustions", outPath, ii.exhaustions); err != nil {
		return err
	}
	if err := util.WriteSamples("latency_us", outPath, ii.latencyUs); err != nil {
		return err
	}
	return nil
}

type metricsInstrumentInstance struct {
	id     string
	lock   *sync.Mutex
	close  chan struct{}
	closed bool

	allocations      []*util.Sample
	allocationsCount int64
	acquires         []*util.Sample
	acquiresCount    int64
	releases         []*util.Sample
	releasesCount    int64
	exhaustions      []*util.Sample
	exhaustionsCount int64
	latencyUs        []*util.Sample
}

/*
 * pool population
 */
func (self *metricsInstrumentInstance) Allocate(string) {
	atomic.AddInt64(&self.allocationsCount, 1)
}

/*
 * buffer lifecycle
 */
func (self *metricsInstrumentInstance) Acquire(string) {
	atomic.AddInt64(&self.acquiresCount, 1)
}

func (self *metricsInstrumentInstance) Release(string) {
	atomic.AddInt64(&self.releasesCount, 1)
}

func (self *metricsInstrumentInstance) Exhausted(string) {
	atomic.AddInt64(&self.exhaustionsCount, 1)
}

/*
 * latency
 */
func (self *metricsInstrumentInstance) LatencySample(_ string, latencyUs int64) {
	self.lock.Lock()
	self.latencyUs = append(self.latencyUs, &util.Sample{Ts: time.Now(), V: latencyUs})
	self.lock.Unlock()
}

/*
 * instrument lifecycle
 */
func (self *metricsInstrumentInstance) Shutdown() {
	self.lock.Lock()
	defer self.lock.Unlock()
	if !self.closed {
		self.closed = true
		close(self.close)
	}
}

func (self *metricsInstrumentInstance) snapshotter(ms int) {
	logrus.Infof("[%s] started", self.id)
	defer logrus.Infof("[%s] exited", self.id)
	for {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		self.snapshot()
		select {
		case <-self.close:
			self.snapshot()
			return
		default:
		}
	}
}

func (self *metricsInstrumentInstance) snapshot() {
	now := time.Now()
	self.lock.Lock()
	self.allocations = append(self.allocations, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.allocationsCount, 0)})
	self.acquires = append(self.acquires, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.acquiresCount, 0)})
	self.releases = append(self.releases, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.releasesCount, 0)})
	self.exhaustions = append(self.exhaustions, &util.Sample{Ts: now, V: atomic.SwapInt64(&self.exhaustionsCount, 0)})
	self.lock.Unlock()
}
