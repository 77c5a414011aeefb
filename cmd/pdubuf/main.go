package main

import (
	"github.com/michaelquigley/pfxlog"
	_ "github.com/openlte/pdubuf/cmd/pdubuf/bench"
	_ "github.com/openlte/pdubuf/cmd/pdubuf/influx"
	"github.com/openlte/pdubuf/cmd/pdubuf/pdubuf"
	"github.com/sirupsen/logrus"
)

func init() {
	pfxlog.Global(logrus.InfoLevel)
	pfxlog.SetPrefix("github.com/openlte/")
}

func main() {
	if err := pdubuf.RootCmd.Execute(); err != nil {
		logrus.Fatalf("error (%v)", err)
	}
}
