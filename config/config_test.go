package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/folio/permission"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Menu.GracePeriod)
	assert.Equal(t, 150*time.Millisecond, cfg.Menu.FadeIn)
	assert.InDelta(t, 0.25, cfg.Menu.FollowLerp, 1e-9)
	assert.Equal(t, "lobby", cfg.Menu.Channel)
	assert.Equal(t, WindowConfig{Title: "folio", Width: 960, Height: 640}, cfg.Window)
	require.Contains(t, cfg.Permissions, "lobby")
	assert.True(t, cfg.Permissions["lobby"].Allows())
	assert.NoError(t, cfg.Validate())
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
log_level: debug
menu:
  grace_period: 2s
  fade_in: 300ms
  follow_lerp: 0.5
  channel: studio
window: {title: review, width: 1280, height: 720}
permissions:
  studio:
    pin_roles: [owner, moderator]
    role: moderator
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Menu.GracePeriod)
	assert.Equal(t, 300*time.Millisecond, cfg.Menu.FadeIn)
	assert.InDelta(t, 0.5, cfg.Menu.FollowLerp, 1e-9)
	assert.Equal(t, "studio", cfg.Menu.Channel)
	assert.Equal(t, "review", cfg.Window.Title)
	assert.Equal(t, []string{"owner", "moderator"}, cfg.Permissions["studio"].PinRoles)
	assert.Equal(t, "moderator", cfg.Permissions["studio"].Role)
}

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("menu:\n  channel: studio\n"))
	require.NoError(t, err)

	assert.Equal(t, "studio", cfg.Menu.Channel)
	assert.Equal(t, time.Second, cfg.Menu.GracePeriod)
	assert.Equal(t, 960, cfg.Window.Width)
	require.Contains(t, cfg.Permissions, "studio")
	assert.Equal(t, "owner", cfg.Permissions["studio"].Role)
}

func TestParse_MissingPermissionsAllowPinning(t *testing.T) {
	cfg, err := Parse([]byte("log_level: debug\n"))
	require.NoError(t, err)

	oracle := permission.NewOracle(cfg.Permissions)
	assert.True(t, oracle.CanPin(cfg.Menu.Channel, 5))
	assert.Equal(t, Default().Permissions, cfg.Permissions)
}

func TestParse_ExplicitPermissionsKept(t *testing.T) {
	cfg, err := Parse([]byte("permissions:\n  lobby:\n    pin_roles: [moderator]\n    role: viewer\n"))
	require.NoError(t, err)

	oracle := permission.NewOracle(cfg.Permissions)
	assert.False(t, oracle.CanPin("lobby", 5))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"log level", "log_level: loud\n"},
		{"negative grace", "menu:\n  grace_period: -1s\n"},
		{"lerp above one", "menu:\n  follow_lerp: 1.5\n"},
		{"negative width", "window:\n  width: -10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("menu: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Str("document", "report").Msg("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "report")

	buf.Reset()
	fallback := NewLogger("nonsense", &buf)
	fallback.Debug().Msg("hidden")
	fallback.Info().Msg("visible")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
