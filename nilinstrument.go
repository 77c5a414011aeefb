package pdubuf

type nilInstrument struct{}

func NewNilInstrument() Instrument {
	return &nilInstrument{}
}

func (self *nilInstrument) NewInstance(_ string) InstrumentInstance {
	return &nilInstrumentInstance{}
}

type nilInstrumentInstance struct{}

/*
 * pool population
 */
func (self *nilInstrumentInstance) Allocate(string) {}

/*
 * buffer lifecycle
 */
func (self *nilInstrumentInstance) Acquire(string)   {}
func (self *nilInstrumentInstance) Release(string)   {}
func (self *nilInstrumentInstance) Exhausted(string) {}

/*
 * latency
 */
func (self *nilInstrumentInstance) LatencySample(string, int64) {}

/*
 * instrument lifecycle
 */
func (self *nilInstrumentInstance) Shutdown() {}
