/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/fulmenhq/svdregress/pkg/render"
	"github.com/fulmenhq/svdregress/pkg/svdfile"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type inspectResult struct {
	File   string          `json:"file"`
	Device *svdfile.Device `json:"device,omitempty"`
	Cases  []string        `json:"cases"`
	Notes  []string        `json:"notes,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// expandSVDPaths replaces directories with the .svd files beneath them.
func expandSVDPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(arg), "**/*.svd")
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		for _, m := range matches {
			out = append(out, filepath.Join(arg, filepath.FromSlash(m)))
		}
	}
	return out, nil
}

// matchCases finds the catalog cases whose chip names the device or file.
func matchCases(cases []catalog.TestCase, file string, d svdfile.Device) ([]string, []string) {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	names := []string{}
	var notes []string
	for _, tc := range cases {
		if !strings.EqualFold(tc.Chip, d.Name) && !strings.EqualFold(tc.Chip, base) {
			continue
		}
		names = append(names, tc.Name())
		if arch := d.Arch(); arch != "" && arch != tc.Arch.String() {
			notes = append(notes, fmt.Sprintf("%s declares arch %s but the SVD CPU is %s", tc.Name(), tc.Arch, d.CPU))
		}
	}
	return names, notes
}

func (a *app) newInspectCommand() *cobra.Command {
	workers := runtime.NumCPU()
	cmd := &cobra.Command{
		Use:   "inspect <file.svd|dir>...",
		Short: "Read device metadata from downloaded SVD files",
		Long: `Read the <device> metadata (name, vendor, CPU, peripheral count) of SVD files
and, when a catalog is configured, list the test cases each file serves.
Directories are searched for *.svd files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat(cmd, "text", "json")
			if err != nil {
				return err
			}
			paths, err := expandSVDPaths(args)
			if err != nil {
				return withExitCode(exitcode.ConfigError, err)
			}

			var cases []catalog.TestCase
			if a.cfg.Catalog.Path != "" {
				if cases, err = a.loadCases(); err != nil {
					return err
				}
			}

			results := make([]inspectResult, len(paths))
			g, gctx := errgroup.WithContext(cmd.Context())
			if workers < 1 {
				workers = 1
			}
			g.SetLimit(workers)
			for idx, path := range paths {
				g.Go(func() error {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					res := inspectResult{File: path, Cases: []string{}}
					d, err := svdfile.ReadFile(path)
					if err != nil {
						res.Error = err.Error()
					} else {
						res.Device = &d
						res.Cases, res.Notes = matchCases(cases, path, d)
					}
					results[idx] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Error != "" {
					failed++
					logger.Debug("SVD inspection failed", logger.String("file", r.File), logger.String("error", r.Error))
				}
				for _, n := range r.Notes {
					logger.Warn(n, logger.String("file", r.File))
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				tbl := render.Table{Headers: []string{"FILE", "DEVICE", "VENDOR", "CPU", "PERIPHERALS", "CASES"}, MaxWidth: 48}
				for _, r := range results {
					if r.Device == nil {
						tbl.AddRow(r.File, "error: "+r.Error)
						continue
					}
					tbl.AddRow(r.File, r.Device.Name, r.Device.Vendor, r.Device.CPU,
						strconv.Itoa(r.Device.Peripherals), strings.Join(r.Cases, ", "))
				}
				err = tbl.Write(out)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(results)
			}
			if err != nil {
				return err
			}
			if failed > 0 {
				return withExitCode(exitcode.ValidationError, fmt.Errorf("%d of %d SVD file(s) could not be read", failed, len(results)))
			}
			return nil
		},
	}
	cmd.Flags().String("format", "text", "Output format (text|json)")
	cmd.Flags().IntVar(&workers, "workers", workers, "Files read in parallel")
	return cmd
}
