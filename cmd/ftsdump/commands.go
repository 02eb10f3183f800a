package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spectro-tools/go-fts/fts"
)

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newStructureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "structure <file>",
		Short: "Show the block directory of an FTS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fts.Open(args[0], fts.WithLogger(logger))
			if err != nil {
				return err
			}
			defer f.Close()
			defer printSessionLog(f.Log())

			blocks := f.Blocks()
			if cfg.Output == "json" {
				return emitJSON(blocks)
			}

			rows := make([][]string, 0, len(blocks))
			for _, b := range blocks {
				rows = append(rows, []string{
					b.Name,
					strconv.Itoa(int(b.PrimaryCode)),
					strconv.Itoa(int(b.SecondaryCode)),
					strconv.Itoa(int(b.Length)),
					strconv.Itoa(int(b.Offset)),
				})
			}
			fmt.Println(renderTable(
				[]string{"Block", "Primary", "Secondary", "Length", "Offset"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))

			for _, name := range f.Collisions() {
				fmt.Printf("warning: directory name collision on %q (last record wins)\n", name)
			}
			return nil
		},
	}
}

func newHeaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "header <file>",
		Short: "Show the decoded header parameters of an FTS file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fts.Open(args[0], fts.WithLogger(logger))
			if err != nil {
				return err
			}
			defer f.Close()
			defer printSessionLog(f.Log())

			rows := f.HeaderReport()
			if cfg.Output == "json" {
				type jsonRow struct {
					Block       string `json:"block"`
					Tag         string `json:"tag"`
					Description string `json:"description,omitempty"`
					Value       string `json:"value"`
				}
				out := make([]jsonRow, 0, len(rows))
				for _, r := range rows {
					out = append(out, jsonRow{r.Block, r.Tag, r.Description, r.Value.String()})
				}
				return emitJSON(out)
			}

			tableRows := make([][]string, 0, len(rows))
			for _, r := range rows {
				tableRows = append(tableRows, []string{r.Block, r.Tag, r.Description, r.Value.String()})
			}
			fmt.Println(renderTable(
				[]string{"Block", "Tag", "Description", "Value"},
				tableRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newDataCommand() *cobra.Command {
	var blockName string
	cmd := &cobra.Command{
		Use:   "data <file>",
		Short: "Summarize a data block and its coordinate axis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fts.Open(args[0], fts.WithLogger(logger))
			if err != nil {
				return err
			}
			defer f.Close()
			defer printSessionLog(f.Log())

			name := blockName
			if name == "" {
				name = fts.BlockSpectrum
				if !f.HasBlock(name) && f.HasBlock(fts.BlockSpectrumSc) {
					name = fts.BlockSpectrumSc
				}
			}

			db, err := f.DataBlock(name)
			if err != nil {
				return err
			}
			return summarizeBlock(db)
		},
	}
	cmd.Flags().StringVar(&blockName, "block", "", "data block display name (default: spectrum)")
	return cmd
}

func summarizeBlock(db *fts.DataBlock) error {
	if len(db.Values) == 0 {
		fmt.Printf("%s: empty data block\n", db.Name)
		return nil
	}
	min, max := db.Values[0], db.Values[0]
	for _, v := range db.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if cfg.Output == "json" {
		return emitJSON(map[string]any{
			"block":      db.Name,
			"kind":       db.Kind.String(),
			"samples":    len(db.Values),
			"axis_first": db.Axis[0],
			"axis_last":  db.Axis[len(db.Axis)-1],
			"value_min":  min,
			"value_max":  max,
		})
	}

	fmt.Println(renderTable(
		[]string{"Block", "Kind", "Samples", "Axis first", "Axis last", "Min", "Max"},
		[][]string{{
			db.Name,
			db.Kind.String(),
			strconv.Itoa(len(db.Values)),
			strconv.FormatFloat(db.Axis[0], 'g', 8, 64),
			strconv.FormatFloat(db.Axis[len(db.Axis)-1], 'g', 8, 64),
			strconv.FormatFloat(float64(min), 'g', 6, 64),
			strconv.FormatFloat(float64(max), 'g', 6, 64),
		}},
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

func newSlicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slices <dir>",
		Short: "Aggregate the slice files of a segmented acquisition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := fts.LoadSlices(args[0], fts.WithLogger(logger))
			if err != nil {
				return err
			}
			printSessionLog(set.Log())

			axisLast := 0.0
			if n := len(set.Composite.Axis); n > 0 {
				axisLast = set.Composite.Axis[n-1]
			}

			if cfg.Output == "json" {
				type jsonSlice struct {
					ID      string `json:"id"`
					Samples int    `json:"samples"`
				}
				slices := make([]jsonSlice, 0, len(set.Slices))
				for _, s := range set.Slices {
					slices = append(slices, jsonSlice{s.ID, len(s.Values)})
				}
				return emitJSON(map[string]any{
					"slices":            slices,
					"composite_samples": len(set.Composite.Values),
					"axis_last":         axisLast,
				})
			}

			rows := make([][]string, 0, len(set.Slices))
			for _, s := range set.Slices {
				rows = append(rows, []string{s.ID, strconv.Itoa(len(s.Values))})
			}
			fmt.Println(renderTable(
				[]string{"Slice", "Samples"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Printf("composite: %d samples, axis [0, %g]\n",
				len(set.Composite.Values), axisLast)
			return nil
		},
	}
}
