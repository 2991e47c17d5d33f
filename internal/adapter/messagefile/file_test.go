package messagefile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushcron/internal/domain/model"
)

const validMessage = `{
  "name": "astro-vista-evening",
  "heading": "AstroVista Notification",
  "message": "🌕 Full moon tonight!",
  "url": null,
  "segment": "",
  "big_picture": "https://example.com/moon.png",
  "show_rate_button": true
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "message.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidMessage(t *testing.T) {
	n, err := New().Load(context.Background(), writeFile(t, validMessage))
	require.NoError(t, err)

	assert.Equal(t, "astro-vista-evening", n.Name)
	assert.Equal(t, "🌕 Full moon tonight!", n.Message)
	assert.Equal(t, "", n.URL)
	assert.Equal(t, model.DefaultSegment, n.Segment)
	assert.Equal(t, "https://example.com/moon.png", n.BigPicture)
	assert.True(t, n.ShowRateButton)
	assert.True(t, n.Targets(model.PlatformAndroid))
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		Name     string
		Content  string
		Contains string
	}{
		{
			Name:     "missing_fields",
			Content:  `{"name":"x","message":"hi"}`,
			Contains: "missing required fields: heading, url, segment, big_picture, show_rate_button",
		},
		{
			Name:     "empty_message",
			Content:  `{"name":"x","heading":"h","message":"  ","url":"","segment":"All","big_picture":"","show_rate_button":false}`,
			Contains: "message field cannot be empty",
		},
		{
			Name:     "malformed_json",
			Content:  `{"name":`,
			Contains: "invalid JSON format",
		},
		{
			Name:     "invalid_utf8",
			Content:  "{\"name\":\"\xff\"}",
			Contains: "character encoding error",
		},
		{
			Name:     "unknown_platform",
			Content:  `{"name":"x","heading":"h","message":"m","url":"","segment":"All","big_picture":"","show_rate_button":false,"platforms":["pager"]}`,
			Contains: `unknown platform "pager"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := New().Load(context.Background(), writeFile(t, tc.Content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tc.Contains)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCleanTextStripsMarkup(t *testing.T) {
	assert.Equal(t, "Full moon tonight", cleanText("<b>Full moon</b> tonight"))
	assert.Equal(t, "Tom & Jerry", cleanText("Tom & Jerry"))
	assert.Equal(t, "caf\u00e9", cleanText("cafe\u0301"))
}

func TestCleanTextDecodesEntitiesWithoutMarkup(t *testing.T) {
	assert.Equal(t, "Sun & Moon", cleanText("Sun &amp; Moon"))
	assert.Equal(t, "Sun & Moon", cleanText("<b>Sun &amp; Moon</b>"))
}

func TestSaveRoundTripKeepsEmoji(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "astro.json")
	tmpl := Template("ASTRO_VISTA")
	require.NoError(t, Save(path, tmpl))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "🔭")
	assert.Contains(t, string(raw), `"show_rate_button": false`)

	loaded, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "AstroVista Notification", loaded.Heading)
	assert.Equal(t, "astro-vista-daily", loaded.Name)
	assert.Equal(t, []model.Platform{model.PlatformAndroid}, loaded.Platforms)
}
