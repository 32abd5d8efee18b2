package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/config"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/face"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

type catalogOptions struct {
	shape   string
	ageBand string
	prefix  string
	urls    bool
}

func newCatalogCmd() *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the configured object store and print the catalog built from it",
		Long: `Lists the object store selected by STORAGE_TYPE (and S3_* settings), parses
every object name and prints the resulting styles grouped by face shape and
age band. Malformed names are counted as skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("prefix") {
				cfg.S3Prefix = opts.prefix
			}

			logger := newLogger()
			lister, err := face.NewObjectLister(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			return runCatalog(cmd, lister, cfg.S3Prefix, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.shape, "shape", "", "only print this face shape (english name or Korean tag)")
	cmd.Flags().StringVar(&opts.ageBand, "age-band", "", "only print this age band")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "object prefix to list (default: S3_PREFIX)")
	cmd.Flags().BoolVar(&opts.urls, "urls", false, "print every variant URL")
	return cmd
}

func runCatalog(cmd *cobra.Command, lister provider.ObjectLister, prefix string, opts *catalogOptions, logger *slog.Logger) error {
	shapes := domain.FaceShapes
	if opts.shape != "" {
		shape, err := domain.ParseFaceShape(opts.shape)
		if err != nil {
			return fmt.Errorf("--shape %q: %w", opts.shape, err)
		}
		shapes = []domain.FaceShape{shape}
	}

	band, err := domain.ParseAgeBand(opts.ageBand)
	if err != nil {
		return fmt.Errorf("--age-band %q: %w", opts.ageBand, err)
	}

	objects, err := lister.ListObjects(cmd.Context(), prefix)
	if err != nil {
		return fmt.Errorf("list %s objects: %w", lister.Name(), err)
	}

	snap := catalog.Build(objects, 1, time.Now(), logger)
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHAPE\tAGE BAND\tSEQ\tSTYLE\tVARIANTS\tPRIMARY URL")
	for _, shape := range shapes {
		for _, entry := range snap.Entries(shape, band) {
			fmt.Fprintf(w, "%s\t%s\t%03d\t%s\t%d\t%s\n",
				shape.Tag(), entry.AgeBand, entry.Sequence, entry.StyleName, len(entry.URLs), entry.PrimaryURL())
			if opts.urls {
				for _, u := range entry.URLs[1:] {
					fmt.Fprintf(w, "\t\t\t\t\t%s\n", u)
				}
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printSummary(out, lister.Name(), len(objects), snap)
	return nil
}

func printSummary(out io.Writer, backend string, objects int, snap *catalog.Snapshot) {
	fmt.Fprintln(out, strings.Repeat("-", 40))
	fmt.Fprintf(out, "backend=%s objects=%d styles=%d variants=%d skipped=%d collisions=%d\n",
		backend, objects, snap.EntryCount(), snap.AssetCount(), snap.Skipped, snap.Collisions)
}
