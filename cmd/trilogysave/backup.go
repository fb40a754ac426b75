package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	restoreOutput string
	pruneKeep     int
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage save snapshots",
}

var backupListCmd = &cobra.Command{
	Use:   "list [FILE]",
	Short: "List snapshots, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			path = abs
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		entries, err := st.List(path)
		if err != nil {
			return errors.Wrap(err, "list backups")
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTIME\tFORMAT\tSIZE\tID\tFILE\tNOTE")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
				e.Seq, e.Time.Local().Format("2006-01-02 15:04:05"), e.Format, e.Size, e.ID(), e.Path, e.Note)
		}
		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore N",
	Short: "Write snapshot N back to its file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.Wrap(err, "snapshot number")
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		e, data, err := st.Get(seq)
		if err != nil {
			return errors.Wrap(err, "restore")
		}
		out := restoreOutput
		if out == "" {
			out = e.Path
		}
		if err := writeFile(out, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored #%d to %s\n", e.Seq, out)
		return nil
	},
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop old snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keep := cfg.Backup.Keep
		if cmd.Flags().Changed("keep") {
			keep = pruneKeep
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		n, err := st.Prune(keep)
		if err != nil {
			return errors.Wrap(err, "prune")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d snapshots\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd, backupRestoreCmd, backupPruneCmd)
	backupRestoreCmd.Flags().StringVarP(&restoreOutput, "output", "o", "", "write here instead of the original path")
	backupPruneCmd.Flags().IntVar(&pruneKeep, "keep", 0, "snapshots to keep per file (default from config)")
}
