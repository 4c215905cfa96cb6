package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/stretchr/testify/require"
)

const fixtureCatalog = `
- arch: cortex-m
  group: Nordic
  chip: nrf52
- arch: cortex-m
  group: STMicroF4
  chip: STM32F429
  suffix: fpu
  opts: [--atomics]
  run_when: not-short
- arch: riscv
  group: Espressif
  chip: esp32c3
  run_when: never
- arch: msp430
  group: Unknown
  chip: msp430g2553
  svd_url: https://example.com/msp430g2553.svd
  should_pass: false
`

// execRoot runs a fresh command tree with its own catalog. Logs go to a
// separate buffer so stdout stays parseable.
func execRoot(t *testing.T, args []string) (string, error) {
	t.Helper()
	out, _, err := execRootSplit(t, args)
	return out, err
}

func execRootSplit(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	a := newApp(catalog.New())
	root := a.newRootCommand()
	a.registerSubcommands(root)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
