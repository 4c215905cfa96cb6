/*
Copyright © 2025 3 Leaps <info@3leaps.com>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/fulmenhq/svdregress/internal/ops"
	"github.com/fulmenhq/svdregress/pkg/buildinfo"
	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/config"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/spf13/cobra"
)

// app carries the state shared by one command tree: the process-wide
// catalog, the resolved configuration and the help registry.
type app struct {
	catalog  *catalog.Catalog
	registry *ops.Registry
	cfg      *config.Config
}

func newApp(cat *catalog.Catalog) *app {
	return &app{catalog: cat, registry: ops.NewRegistry()}
}

// newRootCommand creates a fresh root command instance.
// Tests build isolated command trees through it without shared state.
func (a *app) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svdregress",
		Short: "Test-case catalog for the SVD code generator regression harness",
		Long: `svdregress loads the regression test-case catalog, derives the SVD download
URL and the run decision for every case, and prints selections for CI.

Examples:
   svdregress init ci/tests.yml            # Write the starter catalog
   svdregress tests --catalog ci/tests.yml # List cases that run
   svdregress urls --short --vendor Nordic # Download URLs for short mode
   svdregress matrix                       # CI job matrix as JSON
   svdregress validate --require-coverage  # Check the catalog covers every vendor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			initializeLogger(cmd)
			return a.loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("config", "", "Config file (default: .svdregress.* in . or $HOME)")
	cmd.PersistentFlags().String("catalog", "", "Test-case catalog file (.yml, .yaml or .json)")
	cmd.PersistentFlags().Bool("short", false, "Short mode: skip cases marked not-short")

	cmd.Version = buildinfo.Version()
	cmd.SetVersionTemplate("svdregress {{.Version}}\n")

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if c != cmd {
			c.Println(c.Long)
			c.Println()
			c.Print(c.UsageString())
			return
		}
		c.Println(c.Long)
		c.Println()
		for _, group := range ops.Groups() {
			regs := a.registry.GetCommandsByGroup(group)
			if len(regs) == 0 {
				continue
			}
			c.Println(group.Title() + ":")
			for _, r := range regs {
				c.Printf("  %-12s %s\n", r.Name, r.Description)
			}
			c.Println()
		}
		c.Println("Flags:")
		c.Print(c.LocalFlags().FlagUsages())
	})

	return cmd
}

// registerSubcommands adds all subcommands to the root command and the help registry.
func (a *app) registerSubcommands(root *cobra.Command) {
	groups := []struct {
		group ops.CommandGroup
		cmd   *cobra.Command
	}{
		{ops.GroupCatalog, a.newTestsCommand()},
		{ops.GroupCatalog, a.newURLsCommand()},
		{ops.GroupCatalog, a.newMatrixCommand()},
		{ops.GroupCatalog, a.newValidateCommand()},
		{ops.GroupCatalog, a.newInspectCommand()},
		{ops.GroupSupport, a.newVendorsCommand()},
		{ops.GroupSupport, a.newInitCommand()},
		{ops.GroupSupport, newVersionCommand()},
	}
	for _, g := range groups {
		root.AddCommand(g.cmd)
		if err := a.registry.Add(g.group, g.cmd); err != nil {
			logger.Warn("Command registration failed", logger.String("command", g.cmd.Name()), logger.Err(err))
		}
	}
}

// Execute builds the command tree around one process-wide catalog and runs it.
// This is called by main.main().
func Execute() {
	a := newApp(catalog.New())
	root := a.newRootCommand()
	a.registerSubcommands(root)

	if err := root.Execute(); err != nil {
		code := exitCodeFor(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("exit", exitcode.String(code)))
		os.Exit(code)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	level, ok := logger.ParseLevel(logLevelStr)

	config := logger.Config{
		Level:     level,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "svdregress",
		Output:    cmd.ErrOrStderr(),
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
	if !ok {
		logger.Warn("Unknown log level, using info", logger.String("level", logLevelStr))
	}
}

// loadConfig resolves configuration for the command being run.
func (a *app) loadConfig(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: configFile, Flags: cmd.Flags()})
	if err != nil {
		if errors.Is(err, config.ErrUnsupportedFormat) {
			return withExitCode(exitcode.UnsupportedFormat, err)
		}
		return withExitCode(exitcode.ConfigError, err)
	}
	if cfg.File != "" {
		logger.Debug("Loaded config", logger.String("file", cfg.File))
	}
	a.cfg = cfg
	return nil
}
