package timeouts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func restoreDefaults(t *testing.T) {
	t.Cleanup(func() {
		Configure(Config{Ping: DefaultPing, Write: DefaultWrite, Query: DefaultQuery})
	})
}

func TestConfigure(t *testing.T) {
	restoreDefaults(t)

	Configure(Config{Write: 7 * time.Second})
	assert.Equal(t, DefaultPing, Ping(), "zero field keeps default")
	assert.Equal(t, 7*time.Second, Write())
	assert.Equal(t, DefaultQuery, Query())

	Configure(Config{Ping: time.Second, Query: time.Minute})
	assert.Equal(t, Config{Ping: time.Second, Write: 7 * time.Second, Query: time.Minute}, Current())

	Configure(Config{})
	assert.Equal(t, Config{Ping: time.Second, Write: 7 * time.Second, Query: time.Minute}, Current(), "empty config changes nothing")
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.New(core), "get logs")
	<-ctx.Done()
	cancel()

	if assert.Equal(t, 1, logs.Len()) {
		assert.Equal(t, "get logs", logs.All()[0].ContextMap()["operation"])
	}
}

func TestWithTimeout_QuietWhenFinishedInTime(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Minute, zap.New(core), "create user")
	cancel()

	assert.Equal(t, 0, logs.Len())
}

func TestWithTimeout_QuietWhenParentCancelled(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithTimeout(parent, time.Minute, zap.New(core), "list users")
	cancelParent()
	<-ctx.Done()
	cancel()

	assert.Equal(t, 0, logs.Len())
}
