package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fulmenhq/svdregress/pkg/catalog"
	"github.com/fulmenhq/svdregress/pkg/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTests_TextTable(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)
	out, err := execRoot(t, []string{"tests", "--catalog", path})
	require.NoError(t, err, out)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Nordic-nrf52")
	assert.Contains(t, out, "STMicroF4-STM32F429-fpu")
	assert.Contains(t, out, "--atomics")
	assert.Contains(t, out, "Unknown-msp430g2553")
	assert.NotContains(t, out, "Espressif-esp32c3", "never cases are left out")
	assert.Contains(t, out, "3 test case(s)")
}

func TestTests_ShortAndAll(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)

	out, err := execRoot(t, []string{"tests", "--catalog", path, "--short"})
	require.NoError(t, err)
	assert.NotContains(t, out, "STMicroF4-STM32F429-fpu")
	assert.Contains(t, out, "2 test case(s)")

	out, err = execRoot(t, []string{"tests", "--catalog", path, "--short", "--all"})
	require.NoError(t, err)
	assert.Contains(t, out, "Espressif-esp32c3")
	assert.Contains(t, out, "4 test case(s)")
}

func TestTests_Filters(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)

	out, err := execRoot(t, []string{"tests", "--catalog", path, "--vendor", "stmicro"})
	require.NoError(t, err)
	assert.Contains(t, out, "STMicroF4-STM32F429-fpu")
	assert.Contains(t, out, "1 test case(s)")

	out, err = execRoot(t, []string{"tests", "--catalog", path, "--chip", "nrf*,msp*"})
	require.NoError(t, err)
	assert.Contains(t, out, "2 test case(s)")

	_, err = execRoot(t, []string{"tests", "--catalog", path, "--group", "Acme"})
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitCodeFor(err))
}

func TestTests_StructuredFormats(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)

	out, err := execRoot(t, []string{"tests", "--catalog", path, "--format", "json"})
	require.NoError(t, err)
	cases, err := catalog.Parse("out.json", []byte(out))
	require.NoError(t, err)
	require.Len(t, cases, 3)
	assert.Equal(t, "Nordic-nrf52", cases[0].Name())
	assert.NotContains(t, out, "null")

	out, err = execRoot(t, []string{"tests", "--catalog", path, "--format", "yaml", "--all"})
	require.NoError(t, err)
	cases, err = catalog.Parse("out.yaml", []byte(out))
	require.NoError(t, err)
	assert.Len(t, cases, 4)

	out, err = execRoot(t, []string{"tests", "--catalog", path, "--format", "toml"})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "[[tests]]"))
}

func TestTests_UnsupportedFormat(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)
	_, err := execRoot(t, []string{"tests", "--catalog", path, "--format", "xml"})
	require.Error(t, err)
	assert.Equal(t, exitcode.UnsupportedFormat, exitCodeFor(err))
}

func TestTests_Template(t *testing.T) {
	path := writeCatalog(t, "tests.yml", fixtureCatalog)
	tpl := filepath.Join(t.TempDir(), "case.hbs")
	require.NoError(t, os.WriteFile(tpl, []byte("{{name}} {{default vendor \"none\"}} {{url}}\n"), 0o600))

	out, err := execRoot(t, []string{"tests", "--catalog", path, "--template", tpl})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nordic-nrf52 Nordic "+catalog.CMSISDataBaseURL+"/Nordic/nrf52.svd", lines[0])
	assert.Equal(t, "Unknown-msp430g2553 none https://example.com/msp430g2553.svd", lines[2])

	_, err = execRoot(t, []string{"tests", "--catalog", path, "--template", filepath.Join(t.TempDir(), "missing.hbs")})
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitCodeFor(err))
}

func TestTests_CatalogErrors(t *testing.T) {
	t.Setenv("SVDREGRESS_CATALOG_PATH", "")

	_, err := execRoot(t, []string{"tests"})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNoSource)
	assert.Equal(t, exitcode.ConfigError, exitCodeFor(err))

	_, err = execRoot(t, []string{"tests", "--catalog", filepath.Join(t.TempDir(), "missing.yml")})
	require.Error(t, err)
	assert.Equal(t, exitcode.FileSystemError, exitCodeFor(err))

	bad := writeCatalog(t, "tests.yml", "- arch: cortex-m\n  group: Acme\n  chip: x\n")
	_, err = execRoot(t, []string{"tests", "--catalog", bad})
	require.Error(t, err)
	assert.Equal(t, exitcode.ValidationError, exitCodeFor(err))

	txt := writeCatalog(t, "tests.txt", "[]")
	_, err = execRoot(t, []string{"tests", "--catalog", txt})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownExtension)
	assert.Equal(t, exitcode.ValidationError, exitCodeFor(err))
}

func TestTests_CatalogFromEnvironment(t *testing.T) {
	path := writeCatalog(t, "tests.json", `[{"arch":"cortex-m","group":"NXP","chip":"LPC176x5x"}]`)
	t.Setenv("SVDREGRESS_CATALOG_PATH", path)

	out, err := execRoot(t, []string{"tests"})
	require.NoError(t, err)
	assert.Contains(t, out, "NXP-LPC176x5x")
}

func TestTests_CatalogFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tests.yml"), []byte(fixtureCatalog), 0o600))
	cfg := filepath.Join(dir, "harness.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("catalog:\n  path: tests.yml\nrun:\n  short: true\n"), 0o600))

	out, err := execRoot(t, []string{"tests", "--config", cfg})
	require.NoError(t, err, out)
	assert.Contains(t, out, "2 test case(s)")

	_, err = execRoot(t, []string{"tests", "--config", filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Equal(t, exitcode.ConfigError, exitCodeFor(err))
}
