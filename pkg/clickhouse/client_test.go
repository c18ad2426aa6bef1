package clickhouse

import (
	"strings"
	"testing"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsNative(t *testing.T) {
	cfg := ClientConfig{Host: "ch", Port: 9000, Database: "finscore", User: "u", Password: "p"}
	for _, opt := range []ClientOption{
		WithTimeouts(5*time.Second, 10*time.Second),
		WithMaxExecutionTime(30 * time.Second),
		WithMaxConnections(8, 4),
	} {
		opt(&cfg)
	}
	opts := cfg.options()

	assert.Equal(t, ch.Native, opts.Protocol)
	assert.Equal(t, []string{"ch:9000"}, opts.Addr)
	assert.Equal(t, ch.Auth{Database: "finscore", Username: "u", Password: "p"}, opts.Auth)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 10*time.Second, opts.ReadTimeout)
	assert.Equal(t, 8, opts.MaxOpenConns)
	assert.Equal(t, 30, opts.Settings["max_execution_time"])
	assert.Nil(t, opts.Compression)
}

func TestOptionsHTTPCompressed(t *testing.T) {
	cfg := ClientConfig{Host: "ch", Port: 8123}
	WithHTTP(true)(&cfg)
	WithCompression(true)(&cfg)
	opts := cfg.options()

	assert.Equal(t, ch.HTTP, opts.Protocol)
	require.NotNil(t, opts.Compression)
	assert.Equal(t, ch.CompressionLZ4, opts.Compression.Method)
	assert.Nil(t, opts.Settings)
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(WithPort(9000))
	require.Error(t, err)
}

func TestDailyCandleSchema(t *testing.T) {
	stmts := DailyCandleSchema("finscore", "daily_candles")
	require.Len(t, stmts, 2)
	assert.True(t, strings.Contains(stmts[1], "finscore.daily_candles"))
	assert.Contains(t, stmts[1], "ReplacingMergeTree")
}
