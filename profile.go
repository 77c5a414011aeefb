package pdubuf

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const profileVersion = 1

// Profile fixes a pool's geometry and instrumentation at construction time.
type Profile struct {
	ProfileVersion   int                    `yaml:"profile_version"`
	BufferSz         uint32                 `yaml:"buffer_sz"`
	HeadroomSz       uint32                 `yaml:"headroom_sz"`
	PoolSz           int                    `yaml:"pool_sz"`
	LatencyTracking  bool                   `yaml:"latency_tracking"`
	Instrument       string                 `yaml:"instrument"`
	InstrumentConfig map[string]interface{} `yaml:"instrument_config"`
	i                Instrument
}

func NewBaselineProfile() *Profile {
	return &Profile{
		ProfileVersion:  profileVersion,
		BufferSz:        DefaultBufferSz,
		HeadroomSz:      DefaultHeadroomSz,
		PoolSz:          1024,
		LatencyTracking: true,
		Instrument:      "nil",
		i:               NewNilInstrument(),
	}
}

// Load overlays YAML profile data onto this profile and resolves the named
// instrument.
func (self *Profile) Load(data []byte) error {
	if err := yaml.Unmarshal(data, self); err != nil {
		return errors.Wrap(err, "unable to parse profile")
	}
	if self.ProfileVersion != profileVersion {
		return errors.Errorf("invalid profile version [%d != %d]", self.ProfileVersion, profileVersion)
	}
	i, err := NewInstrument(self.Instrument, self.InstrumentConfig)
	if err != nil {
		return errors.Wrap(err, "unable to create instrument")
	}
	self.i = i
	return self.Validate()
}

func (self *Profile) Validate() error {
	if self.BufferSz < 1 {
		return errors.New("missing 'buffer_sz'")
	}
	if self.HeadroomSz >= self.BufferSz {
		return errors.Errorf("headroom swallows buffer [%d >= %d]", self.HeadroomSz, self.BufferSz)
	}
	if self.PoolSz < 1 {
		return errors.Errorf("invalid 'pool_sz' [%d]", self.PoolSz)
	}
	if self.i == nil {
		self.i = NewNilInstrument()
	}
	return nil
}

// InstrumentImpl returns the resolved instrument.
func (self *Profile) InstrumentImpl() Instrument {
	return self.i
}

// SetInstrument installs an already constructed instrument, bypassing
// named resolution.
func (self *Profile) SetInstrument(i Instrument) {
	self.i = i
}

func (self *Profile) Dump() string {
	out := "profile {\n"
	out += fmt.Sprintf("\t%-20s %d\n", "profile_version", self.ProfileVersion)
	out += fmt.Sprintf("\t%-20s %d\n", "buffer_sz", self.BufferSz)
	out += fmt.Sprintf("\t%-20s %d\n", "headroom_sz", self.HeadroomSz)
	out += fmt.Sprintf("\t%-20s %d\n", "pool_sz", self.PoolSz)
	out += fmt.Sprintf("\t%-20s %t\n", "latency_tracking", self.LatencyTracking)
	out += fmt.Sprintf("\t%-20s %s\n", "instrument", self.Instrument)
	out += "}\n"
	return out
}
