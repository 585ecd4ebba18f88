package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ViewTTL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "u1", cfg.Session.DefaultUserID)
	assert.Equal(t, 30, cfg.Session.DefaultCapacity)
	assert.Equal(t, 50, cfg.Activity.LogSize)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("VIEW_CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	v.Set("DEFAULT_COURSE_CAPACITY", -4)
	v.Set("ENABLE_CACHE", true)

	cfg := fromViper(v)

	assert.Equal(t, 5*time.Minute, cfg.Cache.ViewTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30, cfg.Session.DefaultCapacity)
	assert.True(t, cfg.Cache.Enabled)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("", time.Second))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Second))
	assert.Equal(t, time.Second, parseDuration("soon", time.Second))
}
