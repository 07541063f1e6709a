package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzclock/catalog"
	"github.com/ngrash/go-tzclock/tzdb/ianadist"
)

func (a *app) newGenCommand() *cobra.Command {
	var (
		archive string
		year    int
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Compile an IANA tzdata release into a zone table",
		Long: `gen downloads the latest IANA tzdata release, or reads a local tzdata
tar.gz with --archive, reduces every zone to the rules in effect this year (or
in --year) and writes the result in tzdata source format. The output can be
passed back with --catalog.

With --etag, nothing is written if the release on the server is unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			release, err := a.fetchRelease(cmd.Context(), archive)
			if err != nil {
				return err
			}
			if release == nil {
				a.logger.Info("release not modified", "etag", a.cfg.Gen.ETag)
				return nil
			}

			f, err := release.Parse()
			if err != nil {
				return fmt.Errorf("parse release %s: %w", release.Version, err)
			}
			if year == 0 {
				year = a.now().UTC().Year()
			}
			cat, err := catalog.Compile(f, year)
			if err != nil {
				return fmt.Errorf("compile release %s: %w", release.Version, err)
			}
			a.logger.Info("compiled release", "version", release.Version, "year", year,
				"zones", cat.Len(), "aliases", len(cat.Aliases()), "rules", len(cat.Rules()))

			return a.writeCatalog(cmd.OutOrStdout(), release.Version, cat)
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "read a local tzdata tar.gz instead of downloading")
	cmd.Flags().IntVar(&year, "year", 0, "keep the rules in effect in this year (default: current year)")
	cmd.Flags().String("out", "", "output file (default: stdout)")
	cmd.Flags().String("etag", "", "ETag of the last download; skip if unchanged")
	cmd.Flags().Duration("timeout", 0, "download timeout (default 1m)")
	return cmd
}

// fetchRelease returns nil and no error if the server reports the configured ETag as current.
func (a *app) fetchRelease(ctx context.Context, archive string) (*ianadist.Release, error) {
	if archive != "" {
		f, err := os.Open(archive)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ianadist.ReadArchive(bufio.NewReader(f))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Gen.Timeout)
	defer cancel()

	release, etag, err := ianadist.Latest(ctx, a.cfg.Gen.ETag)
	if err != nil {
		return nil, fmt.Errorf("download latest release: %w", err)
	}
	if release != nil {
		a.logger.Info("downloaded release", "version", release.Version, "etag", etag)
	}
	return release, nil
}

func (a *app) writeCatalog(stdout io.Writer, version string, cat *catalog.Catalog) (err error) {
	w := stdout
	if path := a.cfg.Gen.Out; path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if _, err := fmt.Fprintf(w, "# tzdata %s reduced to current rules by tzclock gen\n", version); err != nil {
		return err
	}
	return catalog.WriteTZData(w, cat)
}
