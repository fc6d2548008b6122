package api

import (
	"testing"

	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(commonConfig.ZapConfig{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	return logger
}
