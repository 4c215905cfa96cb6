package cmd

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"github.com/spf13/cobra"
)

// outputFormat resolves output.format for a command that can only produce
// the listed formats. A value the command cannot produce is an error when it
// came from the command's own --format flag; a shared value from the config
// file or environment falls back to text.
func (a *app) outputFormat(cmd *cobra.Command, supported ...string) (string, error) {
	format := strings.ToLower(a.cfg.Output.Format)
	for _, s := range supported {
		if format == s {
			return format, nil
		}
	}
	if cmd.Flags().Changed("format") {
		return "", withExitCode(exitcode.UnsupportedFormat,
			fmt.Errorf("unsupported format %q for %s (expected %s)", a.cfg.Output.Format, cmd.Name(), strings.Join(supported, ", ")))
	}
	logger.Debug("Configured output format not supported, using text",
		logger.String("command", cmd.Name()),
		logger.String("format", a.cfg.Output.Format))
	return "text", nil
}
