package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	watchBackup bool
	watchSettle time.Duration
)

var saveExtensions = []string{".pcsav", ".xbsav", ".MassEffectSave", ".ps4sav"}

func isSaveFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range saveExtensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Check saves as the game writes them",
	Long: `watch follows a save directory and runs the round-trip check on every
save once it has stopped changing. With --backup each new save is also
stored in the backup database. The directory defaults to [watch] dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Watch.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "" {
			return errors.New("no directory given and [watch] dir is not set")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, dir, func(path string) {
			report(cmd, path)
		})
	},
}

// watch calls handle for each save file in dir that was written and then
// left alone for watchSettle. It returns when ctx is done.
func watch(ctx context.Context, dir string, handle func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "watcher")
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	glog.Infof("watching %s", dir)

	ready := make(chan string)
	debouncers := make(map[string]func(func()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isSaveFile(event.Name) {
				continue
			}
			name := event.Name
			d, ok := debouncers[name]
			if !ok {
				d = debounce.New(watchSettle)
				debouncers[name] = d
			}
			d(func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})
		case name := <-ready:
			handle(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			glog.Warningf("watch: %v", err)
		}
	}
}

func report(cmd *cobra.Command, path string) {
	exact, err := roundTrip(path)
	if err != nil {
		glog.Errorf("%s: %v", path, err)
		fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
		return
	}
	glog.Infof("%s: ok (exact=%t)", path, exact)
	fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
	if !watchBackup {
		return
	}
	s, data, err := readSave(path)
	if err != nil {
		glog.Errorf("%s: %v", path, err)
		return
	}
	if err := snapshot(path, data, s.Format, "watch"); err != nil {
		glog.Errorf("%s: %v", path, err)
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchBackup, "backup", false, "store every checked save in the backup database")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 2*time.Second, "quiet period before a written save is read")
}
