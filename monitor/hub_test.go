package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	hub := NewHub(16)
	go hub.Run()
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func TestHubPublish(t *testing.T) {
	hub, srv := startHub(t)

	c, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer c.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("gaprev.rb1905", map[string]interface{}{"pos": -1, "phase": "HELD"})

	c.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := c.ReadMessage()
	require.NoError(t, err)

	js, err := simplejson.NewJson(msg)
	require.NoError(t, err)
	assert.Equal(t, "gaprev.rb1905", js.Get("name").MustString())
	assert.Equal(t, -1, js.Get("data").Get("pos").MustInt())
	assert.Equal(t, "HELD", js.Get("data").Get("phase").MustString())
	assert.NotZero(t, js.Get("time").MustInt64())
}

func TestHubClientGone(t *testing.T) {
	hub, srv := startHub(t)

	c, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	c.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStalledClientDoesNotHoldLock(t *testing.T) {
	hub, srv := startHub(t)

	// 只连不读，发送缓冲写满以后WriteMessage会卡到超时
	c, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer c.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	big := strings.Repeat("x", 4<<20)
	for i := 0; i < 8; i++ {
		hub.Publish("big", big)
	}
	time.Sleep(300 * time.Millisecond)

	done := make(chan int, 1)
	go func() { done <- hub.Clients() }()
	select {
	case n := <-done:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("Clients blocked while writing to a stalled client")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(2)
	hub.Publish("a", 1)
	hub.Publish("b", 2)
	hub.Publish("c", 3)
	assert.Equal(t, uint64(1), hub.Dropped())

	// 序列化失败不进队列
	hub = NewHub(2)
	hub.Publish("bad", make(chan int))
	assert.Equal(t, uint64(0), hub.Dropped())
	assert.Len(t, hub.broadcast, 0)
}

func TestWatch(t *testing.T) {
	hub, srv := startHub(t)

	type got struct {
		name string
		pos  int
	}
	recv := make(chan got, 4)
	exitCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		Watch(wsURL(srv), "gaprev.", func(name string, data *simplejson.Json) {
			recv <- got{name: name, pos: data.Get("pos").MustInt()}
		}, exitCh)
	}()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("other.x", map[string]int{"pos": 9})
	hub.Publish("gaprev.rb1905", map[string]int{"pos": 2})

	select {
	case g := <-recv:
		assert.Equal(t, "gaprev.rb1905", g.name)
		assert.Equal(t, 2, g.pos)
	case <-time.After(2 * time.Second):
		t.Fatal("watch got nothing")
	}

	close(exitCh)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not exit")
	}
}

func TestReconnectGivesUp(t *testing.T) {
	exitCh := make(chan struct{})
	close(exitCh)
	assert.Nil(t, Reconnect("ws://127.0.0.1:1/ws", "test", exitCh))
}
