package configutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"academia-backend/lib/configutil"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	PortalUrl     string `json:"portal_url"`
	TargetPercent int    `json:"target_percent"`
}

func TestReadMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "service.json5"),
		[]byte(`{ portal_url: "https://academia.srmist.edu.in", target_percent: 75 }`),
		0644,
	)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "service.local.json5"),
		[]byte(`{ target_percent: 80 }`),
		0644,
	)
	require.NoError(t, err)

	config, err := configutil.Read[testConfig](filepath.Join(dir, "service.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://academia.srmist.edu.in", config.PortalUrl)
	require.Equal(t, 80, config.TargetPercent)
}

func TestReadMissing(t *testing.T) {
	_, err := configutil.Read[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
