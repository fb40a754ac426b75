// Command trilogysave is a command-line front end for Mass Effect trilogy
// save files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goopsie/trilogySaveTools/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "trilogysave",
	Short:         "Work with Mass Effect trilogy saves",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog refuses to log until the Go flag set reports parsed.
		if err := flag.CommandLine.Parse(nil); err != nil {
			return err
		}
		c, err := config.Load(configPath)
		if err != nil {
			return errors.Wrap(err, "config")
		}
		cfg = c
		if c.Path != "" {
			glog.V(1).Infof("config: %s", c.Path)
		}
		return nil
	},
}

func init() {
	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "ini file (default "+config.DefaultPath()+")")
}

func main() {
	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
