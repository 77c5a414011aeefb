package pdubuf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	buf "github.com/openlte/pdubuf"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&doCpuProfile, "cpu", false, "Enable CPU profiling")
	RootCmd.PersistentFlags().BoolVar(&doMemoryProfile, "memory", false, "Enable memory profiling")
	RootCmd.PersistentFlags().StringVarP(&ProfilePath, "profile", "f", "", "Pool profile file path")
	RootCmd.PersistentFlags().BoolVarP(&profileDump, "dump", "d", false, "Dump the processed profile")
}

var RootCmd = &cobra.Command{
	Use:   strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0])),
	Short: "PDU buffer pool tooling",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if doCpuProfile {
			cpuProfile = profile.Start(profile.CPUProfile)
		}
		if doMemoryProfile {
			memoryProfile = profile.Start(profile.MemProfile)
		}
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfile != nil {
			cpuProfile.Stop()
		}
		if memoryProfile != nil {
			memoryProfile.Stop()
		}
	},
}
var verbose bool
var doCpuProfile bool
var cpuProfile interface{ Stop() }
var doMemoryProfile bool
var memoryProfile interface{ Stop() }
var ProfilePath string
var profileDump bool

// GetProfile builds the baseline profile, overlaid with the --profile file
// when one was given.
func GetProfile() (*buf.Profile, error) {
	p := buf.NewBaselineProfile()
	if ProfilePath != "" {
		data, err := ioutil.ReadFile(ProfilePath)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading profile [%s]", ProfilePath)
		}
		if err := p.Load(data); err != nil {
			return nil, errors.Wrapf(err, "error loading profile [%s]", ProfilePath)
		}
	}
	if profileDump {
		logrus.Infof(p.Dump())
	}
	return p, nil
}
