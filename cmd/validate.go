/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/fulmenhq/svdregress/pkg/render"
	"github.com/fulmenhq/svdregress/pkg/taxonomy"
	"github.com/spf13/cobra"
)

// validationReport is the JSON form of validate's output.
type validationReport struct {
	Source        string                  `json:"source"`
	Total         int                     `json:"total"`
	Runnable      int                     `json:"runnable"`
	RunnableShort int                     `json:"runnable_short"`
	ByVendor      map[taxonomy.Vendor]int `json:"by_vendor"`
	ByGroup       map[taxonomy.Group]int  `json:"by_group"`
	Unvendored    int                     `json:"unvendored"`
	Missing       []taxonomy.Vendor       `json:"missing_vendors"`
}

func buildValidationReport(source string, cases []catalog.TestCase) validationReport {
	cov := catalog.Coverage(cases)
	r := validationReport{
		Source:     source,
		Total:      cov.Total,
		ByVendor:   cov.ByVendor,
		ByGroup:    cov.ByGroup,
		Unvendored: cov.Unvendored,
		Missing:    cov.Missing(),
	}
	if r.Missing == nil {
		r.Missing = []taxonomy.Vendor{}
	}
	for _, tc := range cases {
		if tc.ShouldRun(false) {
			r.Runnable++
		}
		if tc.ShouldRun(true) {
			r.RunnableShort++
		}
	}
	return r
}

func (a *app) newValidateCommand() *cobra.Command {
	requireCoverage := false
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog and report vendor coverage",
		Long: `Load the catalog against its schema, check the vendor taxonomy and report how
many cases each vendor has. With --require-coverage, a vendor without any case
fails the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := taxonomy.CheckTotal(); err != nil {
				return err
			}
			cases, err := a.loadCases()
			if err != nil {
				return err
			}
			format, err := a.outputFormat(cmd, "text", "json")
			if err != nil {
				return err
			}
			report := buildValidationReport(a.catalog.Source(), cases)

			switch format {
			case "text":
				err = writeValidationText(cmd.OutOrStdout(), report)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				err = enc.Encode(report)
			}
			if err != nil {
				return err
			}

			if len(report.Missing) > 0 {
				missing := vendorNames(report.Missing)
				if requireCoverage {
					return withExitCode(exitcode.ValidationError, fmt.Errorf("vendors without test cases: %s", strings.Join(missing, ", ")))
				}
				logger.Warn("Vendors without test cases", logger.Strings("vendors", missing))
			}
			return nil
		},
	}
	cmd.Flags().String("format", "text", "Output format (text|json)")
	cmd.Flags().BoolVar(&requireCoverage, "require-coverage", false, "Fail when a vendor has no test case")
	return cmd
}

func writeValidationText(out io.Writer, r validationReport) error {
	covered := len(taxonomy.AllVendors()) - 1 - len(r.Missing)
	lines := []string{
		"Catalog: " + r.Source,
		fmt.Sprintf("Cases: %d (run: %d, short mode: %d)", r.Total, r.Runnable, r.RunnableShort),
		fmt.Sprintf("Vendors covered: %d/%d", covered, len(taxonomy.AllVendors())-1),
	}
	if r.Unvendored > 0 {
		lines = append(lines, fmt.Sprintf("Cases with explicit svd_url only: %d", r.Unvendored))
	}
	if len(r.Missing) > 0 {
		lines = append(lines, "Missing: "+strings.Join(vendorNames(r.Missing), ", "))
	}
	_, err := io.WriteString(out, render.Box(lines))
	return err
}

func vendorNames(vs []taxonomy.Vendor) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
