package bench

import (
	"encoding/binary"

	buf "github.com/openlte/pdubuf"
	"github.com/openlte/pdubuf/cmd/pdubuf/pdubuf"
	"github.com/openlte/pdubuf/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	benchCmd.Flags().IntVarP(&iterations, "iterations", "i", 100000, "Acquire/release iterations")
	benchCmd.Flags().IntVarP(&burst, "burst", "b", 64, "Buffers held per iteration")
	benchCmd.Flags().IntVarP(&payloadSz, "payload", "s", 1500, "Payload bytes appended per buffer")
	pdubuf.RootCmd.AddCommand(benchCmd)
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Churn a buffer pool the way a stack would, reporting latency metrics",
	Run:   bench,
}
var iterations int
var burst int
var payloadSz int

func bench(_ *cobra.Command, _ []string) {
	p, err := pdubuf.GetProfile()
	if err != nil {
		logrus.Fatalf("unable to load profile (%v)", err)
	}
	pool, err := buf.NewPool("bench", p)
	if err != nil {
		logrus.Fatalf("unable to create pool (%v)", err)
	}
	defer pool.Close()

	payload := make([]byte, payloadSz)
	for i := range payload {
		payload[i] = byte(i)
	}
	header := make([]byte, 4)
	seq := util.NewSequence(1 << 18)

	exhaustions := 0
	held := make([]*buf.ByteBuffer, 0, burst)
	for i := 0; i < iterations; i++ {
		for j := 0; j < burst; j++ {
			b, err := pool.Acquire()
			if err != nil {
				exhaustions++
				continue
			}
			b.SetTimestamp()
			b.SetPdcpSn(seq.Next())
			if err := b.Append(payload); err != nil {
				logrus.Fatalf("append failed (%v)", err)
			}
			binary.BigEndian.PutUint32(header, b.PdcpSn())
			if err := b.Prepend(header); err != nil {
				logrus.Fatalf("prepend failed (%v)", err)
			}
			held = append(held, b)
		}
		for _, b := range held {
			b.Unref()
		}
		held = held[:0]
	}

	for _, pl := range buf.Pools() {
		logrus.Infof("pool [%s] size [%d] busy [%d] free [%d]", pl.Id(), pl.Size(), pl.Busy(), pl.Free())
	}
	logrus.Infof("[%d] iterations, [%d] exhaustions", iterations, exhaustions)

	if mw, ok := p.InstrumentImpl().(buf.MetricsWriter); ok {
		if err := mw.WriteAllSamples(); err != nil {
			logrus.Errorf("error writing samples (%v)", err)
		}
	}
}
