package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-go/router-encoding/tychoerr"
)

func TestGetChainConfig_ReturnsRegisteredCatalog(t *testing.T) {
	cfg, err := GetChainConfig(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.ChainID)
}

func TestGetChainConfig_UnknownChainIsInvalidInput(t *testing.T) {
	_, err := GetChainConfig(999999)
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestAddChainConfig_RegistersNewCatalog(t *testing.T) {
	custom := &ChainConfig{
		ChainID:       8453,
		RouterAddress: common.HexToAddress("0x00000000000000000000000000000000000001"),
		Executors:     map[string]common.Address{"uniswap_v2": common.HexToAddress("0x00000000000000000000000000000000000002")},
	}
	AddChainConfig(custom)

	got, err := GetChainConfig(8453)
	require.NoError(t, err)
	assert.Same(t, custom, got)

	assert.Contains(t, GetSupportedChainIDs(), int64(8453))
}

func TestChainConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     ChainConfig
		wantErr bool
	}{
		{
			name:    "non-positive chain id rejected",
			cfg:     ChainConfig{ChainID: 0, RouterAddress: common.HexToAddress("0x1"), Executors: map[string]common.Address{"a": {}}},
			wantErr: true,
		},
		{
			name:    "missing router address rejected",
			cfg:     ChainConfig{ChainID: 1, Executors: map[string]common.Address{"a": {}}},
			wantErr: true,
		},
		{
			name:    "no executors rejected",
			cfg:     ChainConfig{ChainID: 1, RouterAddress: common.HexToAddress("0x1")},
			wantErr: true,
		},
		{
			name:    "complete config accepted",
			cfg:     ChainConfig{ChainID: 1, RouterAddress: common.HexToAddress("0x1"), Executors: map[string]common.Address{"a": {}}},
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadExecutors_ReadsCatalogForChain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "executors.json")
	raw, err := json.Marshal(map[string]map[string]common.Address{
		"1": {"uniswap_v2": common.HexToAddress("0x00000000000000000000000000000000000003")},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	executors, err := LoadExecutors(path, 1)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x00000000000000000000000000000000000003"), executors["uniswap_v2"])
}

func TestLoadExecutors_MissingChainEntryIsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "executors.json")
	raw, err := json.Marshal(map[string]map[string]common.Address{"1": {}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	_, err = LoadExecutors(path, 42)
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestLoadExecutors_MissingFileIsFatal(t *testing.T) {
	_, err := LoadExecutors(filepath.Join(t.TempDir(), "missing.json"), 1)
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}
