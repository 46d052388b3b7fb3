// Command tileir inspects tiled layout descriptors from the command line: it
// re-canonicalizes their text form, lowers them to affine coordinate
// transforms and evaluates those transforms on concrete coordinates.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gomlx/tileir/types/layouts"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var verbose bool
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})

	root := &cobra.Command{
		Use:          "tileir",
		Short:        "tileir inspects tiled memory-layout descriptors",
		Long:         `tileir parses tiled layout descriptors like "<(8,128)(1,128),[1,8]>", prints their canonical form, and lowers them to affine coordinate transforms.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(parseCommand(logger))
	root.AddCommand(affineCommand(logger))
	root.AddCommand(evalCommand(logger))
	return root
}

func parseCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <descriptor>",
		Short: "Parse a tiled layout descriptor and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := layouts.ParseTiledLayoutString(args[0])
			if err != nil {
				logger.Error("parse failed", "descriptor", args[0], "err", err)
				return err
			}
			logger.Debug("parsed descriptor",
				"tiles", len(layout.Tiles()), "strides", len(layout.TileStrides()), "hash", layout.Hash())
			fmt.Println(layout)
			return nil
		},
	}
}

func affineCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "affine <descriptor>",
		Short: "Print the affine coordinate transform of a tiled layout descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := layouts.ParseTiledLayoutString(args[0])
			if err != nil {
				logger.Error("parse failed", "descriptor", args[0], "err", err)
				return err
			}
			m := layout.AffineMap()
			logger.Debug("lowered descriptor", "dims", m.NumDims(), "results", m.NumResults())
			fmt.Println(m)
			return nil
		},
	}
}

func evalCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <descriptor> <coordinate>...",
		Short: "Apply a tiled layout's affine transform to logical coordinates",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := layouts.ParseTiledLayoutString(args[0])
			if err != nil {
				logger.Error("parse failed", "descriptor", args[0], "err", err)
				return err
			}
			coords := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				coord, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					logger.Error("invalid coordinate", "arg", arg)
					return err
				}
				coords = append(coords, coord)
			}
			out, err := layout.AffineMap().Eval(coords)
			if err != nil {
				logger.Error("evaluation failed", "err", err)
				return err
			}
			parts := make([]string, len(out))
			for i, v := range out {
				parts[i] = strconv.FormatInt(v, 10)
			}
			fmt.Printf("(%s)\n", strings.Join(parts, ", "))
			return nil
		},
	}
}
