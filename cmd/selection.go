package cmd

import (
	"fmt"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/spf13/cobra"
)

// selectionFlags are the filter flags shared by tests, urls and matrix.
type selectionFlags struct {
	chips   []string
	names   []string
	groups  []string
	vendors []string
	arches  []string
	all     bool
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.chips, "chip", nil, "Chip glob patterns (e.g. 'nrf5*')")
	cmd.Flags().StringSliceVar(&s.names, "name", nil, "Test name glob patterns (e.g. 'STMicro*-fpu')")
	cmd.Flags().StringSliceVar(&s.groups, "group", nil, "Groups to include")
	cmd.Flags().StringSliceVar(&s.vendors, "vendor", nil, "Vendors to include (covers all their groups)")
	cmd.Flags().StringSliceVar(&s.arches, "arch", nil, "Architectures to include")
	cmd.Flags().BoolVar(&s.all, "all", false, "Include cases that would not run in the current mode")
}

func (s *selectionFlags) filter(short bool) catalog.Filter {
	return catalog.Filter{
		Chips:          s.chips,
		Names:          s.names,
		Groups:         s.groups,
		Vendors:        s.vendors,
		Arches:         s.arches,
		Short:          short,
		IncludeSkipped: s.all,
	}
}

// loadCases loads the catalog named by the configuration.
func (a *app) loadCases() ([]catalog.TestCase, error) {
	cases, err := a.catalog.Load(a.cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog ready", logger.String("source", a.catalog.Source()), logger.Int("cases", len(cases)))
	return cases, nil
}

// selectCases loads the catalog and applies the selection flags.
func (a *app) selectCases(s *selectionFlags) ([]catalog.TestCase, error) {
	f := s.filter(a.cfg.Run.Short)
	if err := f.Validate(); err != nil {
		return nil, withExitCode(exitcode.ConfigError, fmt.Errorf("invalid selection: %w", err))
	}
	cases, err := a.loadCases()
	if err != nil {
		return nil, err
	}
	selected := f.Apply(cases)
	logger.Debug("Selected test cases",
		logger.Int("selected", len(selected)),
		logger.Int("total", len(cases)),
		logger.Bool("short", f.Short))
	return selected, nil
}

// caseView is the template and matrix view of a test case.
func caseView(tc catalog.TestCase) map[string]interface{} {
	vendor := ""
	if v, ok := tc.Vendor(); ok {
		vendor = v.String()
	}
	opts := tc.Opts
	if opts == nil {
		opts = []string{}
	}
	return map[string]interface{}{
		"name":        tc.Name(),
		"arch":        tc.Arch.String(),
		"group":       tc.Group.String(),
		"vendor":      vendor,
		"chip":        tc.Chip,
		"suffix":      tc.Suffix,
		"opts":        opts,
		"svd_url":     tc.SVDURL,
		"url":         tc.SourceURL(),
		"should_pass": tc.ShouldPass,
		"skip_check":  tc.SkipCheck,
		"run_when":    tc.RunWhen.String(),
	}
}
