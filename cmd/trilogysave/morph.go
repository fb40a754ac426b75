package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goopsie/trilogySaveTools/pkg/headmorph"
)

var morphOutput string

var morphCmd = &cobra.Command{
	Use:   "morph",
	Short: "Export or import custom faces",
}

var morphExportCmd = &cobra.Command{
	Use:   "export FILE OUT.yaml",
	Short: "Write the head morph of a save to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := readSave(args[0])
		if err != nil {
			return err
		}
		h, err := headmorph.Of(s)
		if err != nil {
			return errors.Wrap(err, args[0])
		}
		var buf bytes.Buffer
		if err := headmorph.Export(&buf, h, s.Format.String()); err != nil {
			return err
		}
		if err := os.WriteFile(args[1], buf.Bytes(), 0o644); err != nil {
			return errors.Wrap(err, "write head morph")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: head morph written to %s\n", args[0], args[1])
		return nil
	},
}

var morphImportCmd = &cobra.Command{
	Use:   "import FILE IN.yaml",
	Short: "Replace the head morph of a save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrap(err, "open head morph")
		}
		h, err := headmorph.Import(f)
		f.Close()
		if err != nil {
			return errors.Wrap(err, args[1])
		}

		s, data, err := readSave(path)
		if err != nil {
			return err
		}
		if err := headmorph.Set(s, h); err != nil {
			return errors.Wrap(err, path)
		}
		out := morphOutput
		if out == "" {
			out = path
			if err := snapshot(path, data, s.Format, "before morph import"); err != nil {
				return err
			}
		}
		if err := writeSave(out, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: head morph replaced\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(morphCmd)
	morphCmd.AddCommand(morphExportCmd)
	morphCmd.AddCommand(morphImportCmd)
	morphImportCmd.Flags().StringVarP(&morphOutput, "output", "o", "", "write to this file instead of replacing the input")
}
