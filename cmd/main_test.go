package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportFile(t *testing.T) {
	places, err := parseImportFile(strings.NewReader(`
places:
  - canonical_name: 성수 커피
    lat: 37.544
    lng: 127.056
    tags: [cafe, 작업]
    provider_links:
      - provider: naver
        provider_place_id: "123"
`))
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "성수 커피", places[0].CanonicalName)
	assert.Equal(t, []string{"cafe", "작업"}, places[0].Tags)
	require.NotNil(t, places[0].Lat)
	assert.InDelta(t, 37.544, *places[0].Lat, 1e-9)
	require.Len(t, places[0].ProviderLinks, 1)

	_, err = parseImportFile(strings.NewReader("places:\n  - canonical_name: x\n    colour: red\n"))
	assert.ErrorContains(t, err, "parse import file")

	_, err = parseImportFile(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")

	_, err = parseImportFile(strings.NewReader("places: []\n"))
	assert.ErrorContains(t, err, "no places")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-mode", "test"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestImportThenDupes(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "myspot.db"))
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OTEL_ENABLED", "false")

	file := filepath.Join(dir, "places.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
places:
  - canonical_name: 중복 테스트 카페
    phone: 010-1234-5678
    tags: [cafe]
  - canonical_name: 중복테스트카페
    phone: "+82 10-1234-5678"
`), 0o600))

	out, err := runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema up to date")

	out, err = runCLI(t, "import", file)
	require.NoError(t, err, out)
	assert.Contains(t, out, "created=2 skipped=0 failed=0")
	assert.Contains(t, out, "중복 테스트 카페 (")

	out, err = runCLI(t, "import", "--dry-run", file)
	require.NoError(t, err, out)
	assert.Contains(t, out, "created=0")

	out, err = runCLI(t, "dupes", "--name", "중복 테스트 카페", "--phone", "01012345678")
	require.NoError(t, err, out)
	assert.Contains(t, out, "phone_match")

	out, err = runCLI(t, "dupes", "--phone", "+82 10-1234-5678")
	require.NoError(t, err, out)
	assert.Contains(t, out, "phone_match")

	_, err = runCLI(t, "dupes")
	assert.ErrorContains(t, err, "--name")

	_, err = runCLI(t, "merge", "not-a-uuid", "also-not")
	assert.ErrorContains(t, err, "invalid keep id")
}
