package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/archcore/go/models"
)

func TestReadInputHex(t *testing.T) {
	for _, in := range []string{"90c3", "0x90c3", "90 c3", "90C3"} {
		data, err := ReadInput(in, nil)
		require.NoError(t, err, in)
		assert.Equal(t, []byte{0x90, 0xc3}, data, in)
	}
	_, err := ReadInput("not hex", nil)
	assert.Error(t, err)
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0644))
	data, err := ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = ReadInput("-", strings.NewReader("\xc3"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3}, data)
}

func newTestCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().String("config", "", "")
	return c
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("arch: arm\ncount: 3\n"), 0644))
	c := newTestCmd()
	require.NoError(t, c.Flags().Set("config", path))
	cfg, err := LoadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "arm", cfg.Arch)
	assert.Equal(t, uint(3), cfg.Count)
	assert.Equal(t, uint64(0x1000), cfg.Base)

	require.NoError(t, os.WriteFile(path, []byte("arch: pdp11\n"), 0644))
	_, err = LoadConfig(c)
	assert.ErrorIs(t, err, models.ErrUnsupportedArchitecture)
}

func TestLoadConfigVerbose(t *testing.T) {
	level := log.GetLevel()
	defer log.SetLevel(level)
	log.SetLevel(log.InfoLevel)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: false\n"), 0644))
	c := newTestCmd()
	require.NoError(t, c.Flags().Set("config", path))
	_, err := LoadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, log.GetLevel())

	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0644))
	cfg, err := LoadConfig(c)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestNewArchitecture(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Arch = "arm"
	cfg.Thumb = true
	a, err := NewArchitecture(cfg)
	require.NoError(t, err)
	assert.Equal(t, models.ARCH_ARM32, a.Arch())
	assert.True(t, a.IsThumb())

	cfg.Arch = "sparc"
	_, err = NewArchitecture(cfg)
	assert.Error(t, err)
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "Error: boom")
}
