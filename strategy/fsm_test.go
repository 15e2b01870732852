package strategy

import (
	"testing"

	"github.com/adan830/vnpy/krang"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls []string
}

type testState struct {
	name  string
	next  string
	rec   *recorder
	entry int
}

func (t *testState) Name() string { return t.name }

func (t *testState) Enter(ctx krang.Context) {
	t.entry++
	t.rec.calls = append(t.rec.calls, "enter:"+t.name)
}

func (t *testState) Transit(ctx krang.Context, tick *krang.Tick) string {
	t.rec.calls = append(t.rec.calls, "transit:"+t.name)
	if t.next == "" {
		return t.name
	}
	return t.next
}

func (t *testState) Decide(ctx krang.Context, tick *krang.Tick) {
	t.rec.calls = append(t.rec.calls, "decide:"+t.name)
}

type testHandler struct {
	name string
	rec  *recorder
}

func (h *testHandler) Name() string { return h.name }

func (h *testHandler) OnTick(ctx krang.Context, tick *krang.Tick) {
	h.rec.calls = append(h.rec.calls, "handler:"+h.name)
}

func TestFSMCallOrder(t *testing.T) {
	rec := &recorder{}
	fsm := NewFSM("test")
	a := &testState{name: "a", next: "b", rec: rec}
	b := &testState{name: "b", rec: rec}
	fsm.AddState(a)
	fsm.AddState(b)
	fsm.AddHandler(&testHandler{name: "h1", rec: rec})
	fsm.AddHandler(&testHandler{name: "h2", rec: rec})
	fsm.SetState("a")

	fsm.Call(nil, &krang.Tick{})
	assert.Equal(t, []string{
		"handler:h1", "handler:h2",
		"transit:a", "enter:b", "transit:b",
		"decide:b",
	}, rec.calls)
	assert.Equal(t, "b", fsm.GetState().Name())

	rec.calls = nil
	fsm.Call(nil, &krang.Tick{})
	assert.Equal(t, []string{"handler:h1", "handler:h2", "transit:b", "decide:b"}, rec.calls)
	assert.Equal(t, 1, b.entry)
}

func TestFSMTransitBounded(t *testing.T) {
	rec := &recorder{}
	fsm := NewFSM("loop")
	fsm.AddState(&testState{name: "a", next: "b", rec: rec})
	fsm.AddState(&testState{name: "b", next: "a", rec: rec})
	fsm.SetState("a")

	fsm.Call(nil, &krang.Tick{})
	assert.Equal(t, "decide:a", rec.calls[len(rec.calls)-1])
}

func TestFSMPanics(t *testing.T) {
	fsm := NewFSM("p")
	assert.Panics(t, func() { fsm.SetState("none") })
	assert.Panics(t, func() { fsm.Call(nil, &krang.Tick{}) })

	fsm.AddState(&testState{name: "a", rec: &recorder{}})
	assert.Panics(t, func() { fsm.AddState(&testState{name: "a"}) })

	fsm.AddHandler(&testHandler{name: "h"})
	assert.Panics(t, func() { fsm.AddHandler(&testHandler{name: "h"}) })
}
