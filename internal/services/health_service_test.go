package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"boxscorecli/internal/operations"
)

func TestHealthCheck(t *testing.T) {
	hs := NewHealthService("1.2.3", operations.NewManager(nil, nil, nil, nil), nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.GreaterOrEqual(t, status.UptimeSeconds, 0.0)
	assert.False(t, status.Timestamp.IsZero())
}

func TestRuntime(t *testing.T) {
	hs := NewHealthService("1.2.3", nil, nil)

	info := hs.Runtime()
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, 0, info["active_operations"])
	assert.Contains(t, info, "go_version")
}
