package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	for _, mode := range []string{"stdio", "sse", "http"} {
		t.Run(mode, func(t *testing.T) {
			run, ok := bindings[mode]
			require.True(t, ok)
			assert.NotNil(t, run)
		})
	}

	_, ok := bindings["grpc"]
	assert.False(t, ok)
}

func TestServeCommand(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Use)

	assert.Equal(t, "stdio", cmd.Flags().Lookup("mode").DefValue)
	assert.Equal(t, "0.0.0.0", cmd.Flags().Lookup("host").DefValue)
	assert.Equal(t, "8000", cmd.Flags().Lookup("port").DefValue)
}

func TestServeRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("JIMENG_API_KEY", "")
	t.Setenv("HOME", t.TempDir())

	rootCmd.SetArgs([]string{"serve"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIMENG_API_KEY")
}
