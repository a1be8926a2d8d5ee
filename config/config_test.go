package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("AUTH_SECRET", "test-secret")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "taskit_db", cfg.DBName)
	assert.Equal(t, "http://localhost:5173", cfg.CORSURL1)
	assert.Equal(t, 3*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "taskit-product-images", cfg.GCSBucket)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("CORS_URL2", "https://taskit.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "https://taskit.example.com", cfg.CORSURL2)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	os.Unsetenv("AUTH_SECRET")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

	_, err := Load()
	assert.Error(t, err)
}
