package dis

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/archcore/go/models"
)

func TestRun(t *testing.T) {
	cfg := models.DefaultConfig()
	var out bytes.Buffer
	require.NoError(t, Run(cfg, "4831c0c3", "", "", nil, &out))
	assert.Equal(t, "0x1000: 4831c0 xor rax, rax\n0x1003:     c3 ret\n", out.String())
}

func TestRunBlock(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Arch = "aarch64"
	cfg.Block = true
	cfg.Base = 0x4000
	var out bytes.Buffer
	// nop; ret; nop
	require.NoError(t, Run(cfg, "1f2003d5c0035fd61f2003d5", "", "", nil, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "ret"), lines[1])
}

func TestRunSaveLoad(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "state.acst")
	cfg := models.DefaultConfig()
	cfg.Arch = "x86"
	var out bytes.Buffer
	require.NoError(t, Run(cfg, "90c3", "", snap, nil, &out))

	var again bytes.Buffer
	require.NoError(t, Run(cfg, "", snap, "", nil, &again))
	assert.Equal(t, out.String(), again.String())

	cfg.Arch = "arm"
	assert.Error(t, Run(cfg, "", snap, "", nil, &again))
}

func TestRunNothing(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Run(models.DefaultConfig(), "", "", "", nil, &out))
}

func TestApplyFlags(t *testing.T) {
	cfg := models.DefaultConfig()
	require.NoError(t, disCmd.ParseFlags([]string{"--arch", "arm", "--thumb", "--count", "2"}))
	require.NoError(t, applyFlags(disCmd, cfg))
	assert.Equal(t, "arm", cfg.Arch)
	assert.True(t, cfg.Thumb)
	assert.Equal(t, uint(2), cfg.Count)
	assert.Equal(t, uint64(0x1000), cfg.Base)

	bad := &cobra.Command{Use: "dis"}
	bad.Flags().Bool("base", false, "")
	require.NoError(t, bad.Flags().Set("base", "true"))
	assert.Error(t, applyFlags(bad, models.DefaultConfig()))
}
