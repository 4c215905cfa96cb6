package catalog

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fulmenhq/svdregress/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTestCase_Name(t *testing.T) {
	tests := []struct {
		name string
		tc   TestCase
		want string
	}{
		{
			name: "plain",
			tc:   TestCase{Group: taxonomy.GroupNordic, Chip: "nrf52"},
			want: "Nordic-nrf52",
		},
		{
			name: "dots replaced",
			tc:   TestCase{Group: taxonomy.GroupSTMicroF4, Chip: "STM32F4.29.x"},
			want: "STMicroF4-STM32F4_29_x",
		},
		{
			name: "suffix",
			tc:   TestCase{Group: taxonomy.GroupNordic, Chip: "nrf52", Suffix: "atomics"},
			want: "Nordic-nrf52-atomics",
		},
		{
			name: "suffix keeps its dots",
			tc:   TestCase{Group: taxonomy.GroupEspressif, Chip: "esp32.c3", Suffix: "v1.2"},
			want: "Espressif-esp32_c3-v1.2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tc.Name()
			assert.Equal(t, tt.want, got)
			chipPart := strings.TrimPrefix(got, tt.tc.Group.String()+"-")
			if tt.tc.Suffix != "" {
				chipPart = strings.TrimSuffix(chipPart, "-"+tt.tc.Suffix)
			}
			assert.NotContains(t, chipPart, ".")
		})
	}
}

func TestTestCase_SourceURL(t *testing.T) {
	tc := TestCase{Group: taxonomy.GroupNordic, Chip: "nrf52"}
	assert.Equal(t, "https://raw.githubusercontent.com/cmsis-svd/cmsis-svd-data/main/data/Nordic/nrf52.svd", tc.SourceURL())

	sub := TestCase{Group: taxonomy.GroupSTMicroF1, Chip: "STM32F103xx"}
	assert.Equal(t, CMSISDataBaseURL+"/STMicro/STM32F103xx.svd", sub.SourceURL())

	sifive := TestCase{Group: taxonomy.GroupSiFive, Chip: "e310x"}
	assert.Equal(t, CMSISDataBaseURL+"/SiFive/e310x.svd", sifive.SourceURL())

	override := TestCase{Group: taxonomy.GroupNordic, Chip: "nrf52", SVDURL: "https://example.com/x.svd"}
	assert.Equal(t, "https://example.com/x.svd", override.SourceURL())

	unknownWithURL := TestCase{Group: taxonomy.GroupUnknown, Chip: "msp430g2553", SVDURL: "https://example.com/x.svd"}
	assert.Equal(t, "https://example.com/x.svd", unknownWithURL.SourceURL())
}

func TestTestCase_SourceURL_PanicsWithoutVendor(t *testing.T) {
	tc := TestCase{Group: taxonomy.GroupUnknown, Chip: "mystery"}
	assert.Panics(t, func() { _ = tc.SourceURL() })
}

func TestTestCase_ShouldRun(t *testing.T) {
	tests := []struct {
		runWhen RunWhen
		short   bool
		want    bool
	}{
		{Always, true, true},
		{Always, false, true},
		{NotShort, true, false},
		{NotShort, false, true},
		{Never, true, false},
		{Never, false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.runWhen.String(), func(t *testing.T) {
			tc := TestCase{RunWhen: tt.runWhen}
			assert.Equal(t, tt.want, tc.ShouldRun(tt.short), "short=%v", tt.short)
		})
	}
}

func TestTestCase_UnmarshalJSON_Defaults(t *testing.T) {
	var tc TestCase
	require.NoError(t, json.Unmarshal([]byte(`{"arch":"cortex-m","group":"Nordic","chip":"nrf52"}`), &tc))
	assert.Equal(t, ArchCortexM, tc.Arch)
	assert.True(t, tc.ShouldPass)
	assert.False(t, tc.SkipCheck)
	assert.Equal(t, Always, tc.RunWhen)
	assert.Empty(t, tc.Suffix)
	assert.Nil(t, tc.Opts)
	assert.Empty(t, tc.SVDURL)

	err := json.Unmarshal([]byte(`{"arch":"cortex-m","group":"Nordic","chip":"nrf52","mfgr":"Nordic"}`), &tc)
	assert.Error(t, err, "unknown fields are rejected")

	err = json.Unmarshal([]byte(`{"arch":"z80","group":"Nordic","chip":"nrf52"}`), &tc)
	assert.Error(t, err)
}

func TestTestCase_UnmarshalYAML_Defaults(t *testing.T) {
	var tc TestCase
	require.NoError(t, yaml.Unmarshal([]byte("arch: riscv\ngroup: Espressif\nchip: esp32c3\nshould_pass: false\nrun_when: not-short\n"), &tc))
	assert.Equal(t, ArchRISCV, tc.Arch)
	assert.False(t, tc.ShouldPass)
	assert.Equal(t, NotShort, tc.RunWhen)

	err := yaml.Unmarshal([]byte("arch: riscv\ngroup: Espressif\nchip: esp32c3\nrun_when: sometimes\n"), &tc)
	assert.Error(t, err)
}

func TestTestCase_JSONRoundTripKeepsAbsentFields(t *testing.T) {
	src := `[
  {"arch":"cortex-m","group":"Nordic","chip":"nrf52"},
  {"arch":"cortex-m","group":"Nordic","chip":"nrf52","suffix":"atomics","opts":["--atomics"]},
  {"arch":"riscv","group":"SiFive","chip":"e310x","svd_url":"https://example.com/e310x.svd"}
]`
	cases, err := Parse("tests.json", []byte(src))
	require.NoError(t, err)

	out, err := json.Marshal(cases)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "null")

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &records))
	require.Len(t, records, 3)

	optional := []string{"suffix", "opts", "svd_url"}
	present := [][]string{nil, {"suffix", "opts"}, {"svd_url"}}
	for i, rec := range records {
		for _, key := range optional {
			_, has := rec[key]
			assert.Equal(t, contains(present[i], key), has, "record %d key %s", i, key)
		}
		assert.Contains(t, rec, "should_pass")
		assert.Contains(t, rec, "run_when")
	}

	again, err := Parse("again.json", out)
	require.NoError(t, err)
	assert.Equal(t, cases, again)
}

func TestParseArch(t *testing.T) {
	a, err := ParseArch("Cortex-M")
	require.NoError(t, err)
	assert.Equal(t, ArchCortexM, a)
	_, err = ParseArch("z80")
	assert.Error(t, err)
	assert.Len(t, AllArches(), 6)
}

func TestRunWhen_TextMarshaling(t *testing.T) {
	b, err := RunWhen("").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "always", string(b))

	var r RunWhen
	require.NoError(t, r.UnmarshalText([]byte("never")))
	assert.Equal(t, Never, r)
	assert.Error(t, r.UnmarshalText([]byte("NotShort")))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
