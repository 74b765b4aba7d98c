package database

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping() error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetryRecoversFromStartupRace(t *testing.T) {
	p := &flakyPinger{failures: 2}
	err := pingWithRetry(p, 5, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetryGivesUp(t *testing.T) {
	p := &flakyPinger{failures: 10}
	err := pingWithRetry(p, 3, time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, 3, p.calls)
}
