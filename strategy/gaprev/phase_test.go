package gaprev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTable(t *testing.T) {
	cases := []struct {
		from Phase
		ev   phaseEvent
		to   Phase
		ok   bool
	}{
		{PHASE_FLAT, evSendOpen, PHASE_OPEN_PENDING, true},
		{PHASE_FLAT, evSendClose, PHASE_FLAT, false},
		{PHASE_OPEN_PENDING, evOpenSettled, PHASE_HELD, true},
		{PHASE_OPEN_PENDING, evCancelled, PHASE_FLAT, true},
		{PHASE_OPEN_PENDING, evSendClose, PHASE_FLAT, false},
		{PHASE_OPEN_PENDING, evSendOpen, PHASE_FLAT, false},
		{PHASE_HELD, evSendClose, PHASE_CLOSE_PENDING, true},
		{PHASE_HELD, evSendOpen, PHASE_FLAT, false},
		{PHASE_CLOSE_PENDING, evCloseFilled, PHASE_FLAT, true},
		{PHASE_CLOSE_PENDING, evCancelled, PHASE_HELD, true},
		{PHASE_CLOSE_PENDING, evSendOpen, PHASE_FLAT, false},
	}
	for _, c := range cases {
		to, ok := c.from.next(c.ev)
		assert.Equal(t, c.ok, ok, "%s %s", c.from, c.ev)
		if ok {
			assert.Equal(t, c.to, to, "%s %s", c.from, c.ev)
		}
	}
}

// 开仓中和平仓中互斥：任何一个阶段都不可能一步同时到达两者
func TestPendingPhasesNeverChain(t *testing.T) {
	assert.False(t, PHASE_OPEN_PENDING.can(evSendClose))
	assert.False(t, PHASE_CLOSE_PENDING.can(evSendOpen))
}
