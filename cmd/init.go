/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fulmenhq/svdregress/internal/assets"
	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/fulmenhq/svdregress/pkg/safeio"
	"github.com/spf13/cobra"
)

const defaultCatalogFile = "tests.yml"

// starterCatalog returns the embedded starter catalog encoded for path's extension.
func starterCatalog(path string) ([]byte, int, error) {
	data, err := assets.StarterCatalog()
	if err != nil {
		return nil, 0, err
	}
	cases, err := catalog.Parse(assets.StarterCatalogPath, data)
	if err != nil {
		return nil, 0, fmt.Errorf("embedded starter catalog is invalid: %w", err)
	}

	format, err := catalog.ParseFormat(path)
	if err != nil || format == catalog.FormatTOML {
		return nil, 0, withExitCode(exitcode.UnsupportedFormat,
			fmt.Errorf("%s: catalog files must end in .yml, .yaml or .json", path))
	}
	if format == catalog.FormatYAML {
		return data, len(cases), nil
	}

	var buf bytes.Buffer
	if err := catalog.Encode(&buf, cases, format); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(cases), nil
}

func (a *app) newInitCommand() *cobra.Command {
	force := false
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter test-case catalog",
		Long: `Write the starter catalog, one case per vendor, to path (default tests.yml).
A .json path gets the same cases as JSON. Existing files are kept unless
--force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultCatalogFile
			if len(args) == 1 {
				path = args[0]
			}

			data, count, err := starterCatalog(path)
			if err != nil {
				return err
			}
			if err := safeio.WriteNew(path, data, force); err != nil {
				if errors.Is(err, safeio.ErrExists) {
					return withExitCode(exitcode.FileSystemError, fmt.Errorf("%w (use --force to overwrite)", err))
				}
				return withExitCode(exitcode.FileSystemError, err)
			}
			logger.Debug("Wrote starter catalog", logger.String("path", path), logger.Int("cases", count))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d test cases to %s\n", count, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
