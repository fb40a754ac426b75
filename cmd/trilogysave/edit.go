package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/goopsie/trilogySaveTools/pkg/edit"
)

var (
	editSets     []string
	editOutput   string
	editPlatform string
)

var editCmd = &cobra.Command{
	Use:   "edit FILE",
	Short: "Change fields of a save",
	Long: `edit applies label=value assignments to a save and writes it back.
The original file is stored in the backup database first.

Labels:
  plot.bool[N] plot.int[N] plot.float[N]   plot variables
  me1plot.bool[N] ...                      imported ME1 plot (ME2/ME3)
  player.name player.female player.level player.xp
  player.credits player.medigel player.talent_points
  difficulty`,
	Example: `  trilogysave edit Shepard_01.pcsav --set player.credits=999999 --set plot.bool[1234]=true`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if len(editSets) == 0 && editPlatform == "" {
			return errors.New("nothing to do: use --set or --platform")
		}
		edits, err := edit.ParseAll(editSets)
		if err != nil {
			return err
		}
		s, data, err := readSave(path)
		if err != nil {
			return err
		}
		if err := edit.Apply(s, edits...); err != nil {
			return errors.Wrap(err, "edit")
		}
		switch strings.ToLower(editPlatform) {
		case "":
		case "pc":
			err = s.ConvertPlatform(false)
		case "xbox360", "xbox":
			err = s.ConvertPlatform(true)
		default:
			err = errors.Errorf("unknown platform %q", editPlatform)
		}
		if err != nil {
			return errors.Wrap(err, "convert")
		}

		out := editOutput
		if out == "" {
			out = path
			if err := snapshot(path, data, s.Format, "before edit"); err != nil {
				return err
			}
		}
		if err := writeSave(out, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: applied %d edits\n", out, len(edits))
		return nil
	},
}

var (
	plotBool  int
	plotInt   int
	plotFloat int
	plotME1   bool
)

var plotCmd = &cobra.Command{
	Use:   "plot FILE",
	Short: "Print plot variables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := "plot"
		if plotME1 {
			table = "me1plot"
		}
		var labels []string
		for _, v := range []struct {
			kind string
			idx  int
		}{{"bool", plotBool}, {"int", plotInt}, {"float", plotFloat}} {
			if v.idx >= 0 {
				labels = append(labels, fmt.Sprintf("%s.%s[%d]", table, v.kind, v.idx))
			}
		}
		if len(labels) == 0 {
			return errors.New("use --bool, --int or --float")
		}

		s, _, err := readSave(args[0])
		if err != nil {
			return err
		}
		for _, label := range labels {
			v, err := edit.Get(s, label)
			if err != nil {
				return errors.Wrap(err, label)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", label, v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringArrayVarP(&editSets, "set", "s", nil, "label=value assignment (repeatable)")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "write to this file instead of replacing the input")
	editCmd.Flags().StringVar(&editPlatform, "platform", "", "convert an ME2/ME3 save to pc or xbox360")

	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().IntVar(&plotBool, "bool", -1, "boolean variable index")
	plotCmd.Flags().IntVar(&plotInt, "int", -1, "integer variable index")
	plotCmd.Flags().IntVar(&plotFloat, "float", -1, "float variable index")
	plotCmd.Flags().BoolVar(&plotME1, "me1", false, "read the imported ME1 plot table")
}
