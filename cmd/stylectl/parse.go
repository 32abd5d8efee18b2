package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse NAME...",
		Short: "Parse asset file names and report malformed ones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args)
		},
	}
}

func runParse(cmd *cobra.Command, names []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tSTYLE\tSHAPE\tAGE BAND\tVARIANT\tEXT\tNAME")

	malformed := 0
	for _, name := range names {
		asset, err := catalog.ParseFilename(name)
		if err != nil {
			malformed++
			fmt.Fprintf(w, "-\t-\t-\t-\t-\t-\t%s (%v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\tv%d\t%s\t%s\n",
			asset.Sequence, asset.StyleName, asset.Shape, asset.AgeBand, asset.Variant, asset.Extension, asset.ObjectName)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if malformed > 0 {
		return fmt.Errorf("%d of %d names malformed", malformed, len(names))
	}
	return nil
}
