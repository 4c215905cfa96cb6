/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/render"
	"github.com/spf13/cobra"
)

func (a *app) newTestsCommand() *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "List selected test cases",
		Long: `List the test cases selected for this run.

Cases marked run_when: never, and not-short cases in short mode, are left out
unless --all is given.

Output formats:
  text   aligned table (default)
  json   catalog records, re-loadable
  yaml   catalog records, re-loadable
  toml   catalog records under [[tests]]

--template renders a Handlebars file once per case instead. Available fields:
name, arch, group, vendor, chip, suffix, opts, svd_url, url, should_pass,
skip_check, run_when.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := a.selectCases(sel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if a.cfg.Output.Template != "" {
				return writeTemplate(out, a.cfg.Output.Template, cases)
			}
			return writeCases(out, a.cfg.Output.Format, cases)
		},
	}
	cmd.Flags().String("format", "text", "Output format (text|json|yaml|toml)")
	cmd.Flags().String("template", "", "Handlebars template file rendered per case")
	sel.register(cmd)
	return cmd
}

func writeCases(out io.Writer, format string, cases []catalog.TestCase) error {
	if strings.EqualFold(format, "text") {
		return writeCaseTable(out, cases)
	}
	f, err := catalog.ParseFormat(format)
	if err != nil {
		return withExitCode(exitcode.UnsupportedFormat, err)
	}
	return catalog.Encode(out, cases, f)
}

func writeCaseTable(out io.Writer, cases []catalog.TestCase) error {
	tbl := render.Table{Headers: []string{"NAME", "ARCH", "VENDOR", "RUN", "EXPECT", "OPTS"}, MaxWidth: 48}
	for _, tc := range cases {
		vendor := "-"
		if v, ok := tc.Vendor(); ok {
			vendor = v.String()
		}
		expect := "pass"
		if !tc.ShouldPass {
			expect = "fail"
		}
		if tc.SkipCheck {
			expect += " (no check)"
		}
		tbl.AddRow(tc.Name(), tc.Arch.String(), vendor, tc.RunWhen.String(), expect, strings.Join(tc.Opts, " "))
	}
	if err := tbl.Write(out); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d test case(s)\n", len(cases))
	return err
}

func writeTemplate(out io.Writer, path string, cases []catalog.TestCase) error {
	tpl, err := render.CompileFile(path)
	if err != nil {
		return withExitCode(exitcode.ConfigError, err)
	}
	for _, tc := range cases {
		s, err := tpl.Render(caseView(tc))
		if err != nil {
			return fmt.Errorf("%s: %w", tc.Name(), err)
		}
		if _, err := io.WriteString(out, s); err != nil {
			return err
		}
	}
	return nil
}
