package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Sample struct {
	Ts time.Time
	V  int64
}

// WriteSamples writes a timestamped series to <outPath>/<name>.csv, one
// "unixNanos,value" pair per line.
func WriteSamples(name, outPath string, samples []*Sample) error {
	path := filepath.Join(outPath, fmt.Sprintf("%s.csv", name))
	oF, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.ModePerm)
	if err != nil {
		return err
	}
	defer func() { _ = oF.Close() }()
	w := bufio.NewWriter(oF)
	for _, sample := range samples {
		if _, err := fmt.Fprintf(w, "%d,%d\n", sample.Ts.UnixNano(), sample.V); err != nil {
			return errors.Wrapf(err, "error writing [%s]", path)
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "error flushing [%s]", path)
	}
	logrus.Infof("wrote [%d] samples to [%s]", len(samples), path)
	return nil
}

// ReadSamples reads a series written by WriteSamples back into a
// timestamp-keyed map.
func ReadSamples(path string) (map[int64]int64, error) {
	iF, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = iF.Close() }()

	data := make(map[int64]int64)
	scanner := bufio.NewScanner(iF)
	for scanner.Scan() {
		tokens := strings.Split(scanner.Text(), ",")
		if len(tokens) != 2 {
			return nil, errors.Errorf("malformed sample line [%s]", scanner.Text())
		}
		ts, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing timestamp")
		}
		v, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing value")
		}
		data[ts] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
