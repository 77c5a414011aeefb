package pdubuf

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Instrument interface {
	NewInstance(id string) InstrumentInstance
}

type InstrumentInstance interface {
	// pool population
	Allocate(id string)

	// buffer lifecycle
	Acquire(id string)
	Release(id string)
	Exhausted(id string)

	// latency observed when a stamped buffer returns to the pool
	LatencySample(id string, latencyUs int64)

	// instrument lifecycle
	Shutdown()
}

func NewInstrument(name string, config map[string]interface{}) (i Instrument, err error) {
	switch name {
	case "", "nil":
		return NewNilInstrument(), nil
	case "trace":
		return NewTraceInstrument(config)
	case "metrics":
		return NewMetricsInstrument(config)
	default:
		return nil, errors.Errorf("unknown instrument '%s'", name)
	}
}

func loadInstrumentConfig(config map[string]interface{}, out interface{}) error {
	if config == nil {
		return nil
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal instrument config")
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "unmarshal instrument config")
	}
	return nil
}
