package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[storage]
driver = "memory"

[booking]
cancellation_lead_minutes = 30
timezone = "Europe/Moscow"

[[shops]]
id = "shop-1"
name = "Sparkle"
open_time = "08:00"
close_time = "10:00"
auto_accept = true
admin_ids = [5]

  [[shops.services]]
  id = "basic"
  name = "Basic"
  duration_minutes = 30
  price = 20.0
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 30, cfg.Booking.CancellationLeadMinutes)
	assert.Equal(t, 120, cfg.Booking.MinBookingNoticeMinutes)

	require.Len(t, cfg.Shops, 1)
	shop := cfg.Shops[0].ToDomain()
	assert.True(t, shop.AutoAccept)
	assert.True(t, shop.HasAdmin(5))
	svc, ok := shop.FindService("basic")
	require.True(t, ok)
	assert.Equal(t, 30, svc.DurationMinutes)

	policy, err := cfg.Booking.Policy()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", policy.Location.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARWASH_SERVER_HTTP_PORT", "7070")
	t.Setenv("CARWASH_BOOKING_CANCELLATION_LEAD_MINUTES", "45")
	t.Setenv("CARWASH_DATABASE_PASSWORD", "secret")
	t.Setenv("CARWASH_SCHEDULER_TRIGGER_TOKEN", "cron-token")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, 45, cfg.Booking.CancellationLeadMinutes)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "cron-token", cfg.Scheduler.TriggerToken)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver": `
[storage]
driver = "mongo"
[shop_service]
url = "http://shops"
`,
		"shop closes before open": `
[storage]
driver = "memory"
[[shops]]
id = "s"
open_time = "18:00"
close_time = "08:00"
`,
		"no shop source": `
[storage]
driver = "memory"
`,
		"bad timezone": `
[storage]
driver = "memory"
[booking]
timezone = "Mars/Olympus"
[shop_service]
url = "http://shops"
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabase_DSN(t *testing.T) {
	d := Database{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "carwash", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=carwash sslmode=disable", d.DSN())
}
