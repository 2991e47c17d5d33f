package credentials_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushcron/internal/adapter/credentials"
)

func TestEnvCredentials(t *testing.T) {
	t.Setenv("ASTRO_VISTA_ONESIGNAL_APP_ID", "app-123")
	t.Setenv("ASTRO_VISTA_ONESIGNAL_API_KEY", " key-456 ")

	creds, err := credentials.NewEnv().Credentials("ASTRO_VISTA")
	require.NoError(t, err)
	assert.Equal(t, "app-123", creds.AppID)
	assert.Equal(t, "key-456", creds.APIKey)
	assert.NotContains(t, creds.String(), "key-456")
}

func TestEnvCredentialsMissing(t *testing.T) {
	testCases := []struct {
		Name     string
		Env      map[string]string
		Expected string
	}{
		{
			Name:     "both_missing",
			Env:      map[string]string{},
			Expected: "onesignal credentials not found: MOON_ONESIGNAL_APP_ID, MOON_ONESIGNAL_API_KEY",
		},
		{
			Name:     "key_blank",
			Env:      map[string]string{"MOON_ONESIGNAL_APP_ID": "id", "MOON_ONESIGNAL_API_KEY": "  "},
			Expected: "onesignal credentials not found: MOON_ONESIGNAL_API_KEY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			provider := credentials.NewLookup(func(key string) (string, bool) {
				v, ok := tc.Env[key]
				return v, ok
			})
			_, err := provider.Credentials("MOON")
			require.Error(t, err)
			assert.True(t, errors.Is(err, credentials.ErrMissing))
			assert.EqualError(t, err, tc.Expected)
		})
	}
}
