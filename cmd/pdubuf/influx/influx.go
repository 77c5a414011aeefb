package influx

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/openlte/pdubuf/cmd/pdubuf/pdubuf"
	"github.com/openlte/pdubuf/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	influxCmd.Flags().StringVarP(&influxDbUrl, "url", "", "http://localhost:8086", "InfluxDB URL")
	influxCmd.Flags().StringVarP(&influxDbUsername, "username", "", "", "InfluxDB Username")
	influxCmd.Flags().StringVarP(&influxDbPassword, "password", "", "", "InfluxDB Password")
	influxCmd.Flags().StringVarP(&influxDbDatabase, "database", "", "pdubuf", "InfluxDB Database")
	pdubuf.RootCmd.AddCommand(influxCmd)
}

var influxCmd = &cobra.Command{
	Use:   "influx <metricsRoot>",
	Short: "Import metrics data into the analyzer",
	Args:  cobra.ExactArgs(1),
	Run:   influx,
}
var influxDbUrl string
var influxDbUsername string
var influxDbPassword string
var influxDbDatabase string

func influx(_ *cobra.Command, args []string) {
	paths, err := filepath.Glob(filepath.Join(args[0], "*.csv"))
	if err != nil {
		logrus.Fatalf("error scanning metrics root (%v)", err)
	}
	if len(paths) < 1 {
		logrus.Fatalf("no datasets found under [%s]", args[0])
	}

	authToken := ""
	if influxDbUsername != "" || influxDbPassword != "" {
		authToken = fmt.Sprintf("%s:%s", influxDbUsername, influxDbPassword)
	}
	client := influxdb2.NewClient(influxDbUrl, authToken)
	writeApi := client.WriteAPI("", influxDbDatabase)
	for _, path := range paths {
		dataset := strings.TrimSuffix(filepath.Base(path), ".csv")
		data, err := util.ReadSamples(path)
		if err != nil {
			logrus.Fatalf("error reading dataset [%s] (%v)", dataset, err)
		}
		logrus.Infof("dataset [%s] loaded", dataset)

		for ts, v := range data {
			p := influxdb2.NewPoint(dataset,
				nil,
				map[string]interface{}{"v": v},
				time.Unix(0, ts))
			writeApi.WritePoint(p)
		}
	}
	writeApi.Flush()
	client.Close()
	logrus.Infof("complete")
}
