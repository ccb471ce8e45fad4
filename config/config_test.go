package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dbgc/config"
)

func TestNewDefaultsValidate(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithWorkDir(t.TempDir()))
	require.NoError(cfg.Validate())
	require.Equal(31, cfg.K)
	require.Equal(11, cfg.L)
	require.False(cfg.Colored)
}

func TestValidateRejectsEvenK(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithK(30), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrEvenK)
}

func TestValidateRejectsKRange(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithK(1), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrKRange)

	cfg = config.New(config.WithK(65), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrKRange)
}

func TestValidateRejectsLTooLong(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithK(7), config.WithL(9), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrMinimizerTooLong)
}

func TestValidateRejectsNonPowerOfTwoGraphs(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithGraphs(100), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrGraphsNotPowerOfTwo)
}

func TestValidateRejectsBadReaderThreads(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithReaderThreads(1), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrReaderRange)
}

func TestValidateRejectsZeroStrictBudget(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithMemoryBudget(config.MemoryStrict, 0), config.WithWorkDir(t.TempDir()))
	require.ErrorIs(cfg.Validate(), config.ErrMemoryBudget)
}

func TestValidateRejectsEmptyWorkDir(t *testing.T) {
	require := require.New(t)

	cfg := config.New(config.WithWorkDir(""))
	require.ErrorIs(cfg.Validate(), config.ErrNoWorkDir)
}

func TestLog2(t *testing.T) {
	require := require.New(t)

	require.Equal(0, config.Log2(1))
	require.Equal(7, config.Log2(128))
	require.Equal(14, config.Log2(16384))
}
