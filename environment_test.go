package dbenum_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/dbenum"
)

func TestEnvironment(t *testing.T) {
	for _, env := range []dbenum.Environment{dbenum.Development, dbenum.Production, dbenum.Staging, dbenum.Testing} {
		require.NoError(t, env.Valid())
	}

	require.ErrorIs(t, dbenum.Environment("LOCAL").Valid(), dbenum.ErrNotValid)
	require.True(t, dbenum.Development.IsDevelopment())
	require.True(t, dbenum.Production.IsProduction())
	require.True(t, dbenum.Testing.IsTesting())
	require.False(t, dbenum.Staging.IsProduction())
}

func TestEnvVarOr(t *testing.T) {
	t.Setenv("DBENUM_BOOL", "TRUE")
	t.Setenv("DBENUM_DURATION", "90s")
	t.Setenv("DBENUM_ENV", "testing")
	t.Setenv("DBENUM_BAD_ENV", "local")
	t.Setenv("DBENUM_STRING", "enums.yaml")
	t.Setenv("DBENUM_INT", "4")

	require.True(t, dbenum.EnvVarOrBool("DBENUM_BOOL", false))
	require.True(t, dbenum.EnvVarOrBool("DBENUM_UNSET", true))
	require.Equal(t, 90*time.Second, dbenum.EnvVarOrDuration("DBENUM_DURATION", time.Second))
	require.Equal(t, time.Second, dbenum.EnvVarOrDuration("DBENUM_UNSET", time.Second))
	require.Equal(t, dbenum.Testing, dbenum.EnvVarOrEnv("DBENUM_ENV", dbenum.Development))
	require.Equal(t, dbenum.Development, dbenum.EnvVarOrEnv("DBENUM_BAD_ENV", dbenum.Development))
	require.Equal(t, 4, dbenum.EnvVarOrInt("DBENUM_INT", 1))
	require.Equal(t, 1, dbenum.EnvVarOrInt("DBENUM_STRING", 1))
	require.Equal(t, "enums.yaml", dbenum.EnvVarOrString("DBENUM_STRING", ""))
	require.Equal(t, "fallback", dbenum.EnvVarOrString("DBENUM_UNSET", "fallback"))
}
