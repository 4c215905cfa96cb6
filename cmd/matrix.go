/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/spf13/cobra"
)

// matrixEntry is one CI job.
type matrixEntry struct {
	Name       string   `json:"name"`
	Arch       string   `json:"arch"`
	Group      string   `json:"group"`
	Vendor     string   `json:"vendor,omitempty"`
	Chip       string   `json:"chip"`
	URL        string   `json:"url"`
	Opts       []string `json:"opts"`
	ShouldPass bool     `json:"should_pass"`
	SkipCheck  bool     `json:"skip_check"`
}

type matrix struct {
	Include []matrixEntry `json:"include"`
}

func buildMatrix(cases []catalog.TestCase) matrix {
	m := matrix{Include: make([]matrixEntry, 0, len(cases))}
	for _, tc := range cases {
		e := matrixEntry{
			Name:       tc.Name(),
			Arch:       tc.Arch.String(),
			Group:      tc.Group.String(),
			Chip:       tc.Chip,
			URL:        tc.SourceURL(),
			Opts:       tc.Opts,
			ShouldPass: tc.ShouldPass,
			SkipCheck:  tc.SkipCheck,
		}
		if e.Opts == nil {
			e.Opts = []string{}
		}
		if v, ok := tc.Vendor(); ok {
			e.Vendor = v.String()
		}
		m.Include = append(m.Include, e)
	}
	return m
}

func (a *app) newMatrixCommand() *cobra.Command {
	sel := &selectionFlags{}
	compact := false
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print a CI job matrix of the selected cases",
		Long: `Print the selected cases as a CI job matrix: {"include": [...]}, one entry
per case with its name, arch, group, vendor, chip, url, opts and expectations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := a.selectCases(sel)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(buildMatrix(cases))
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Single-line JSON (for GITHUB_OUTPUT)")
	sel.register(cmd)
	return cmd
}
