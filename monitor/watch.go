package monitor

import (
	"net/http"
	"strings"
	"time"

	"github.com/astaxie/beego/logs"
	simplejson "github.com/bitly/go-simplejson"
	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"
)

/*
  监控客户端，断线自动重连
*/

func WSConnect(wsurl string, tag string) *websocket.Conn {
	req, err := http.NewRequest("GET", wsurl, nil)
	if err != nil {
		logs.Error("[%s]发起websocket连接请求，构建request出错", tag)
		return nil
	}

	c, httpresp, err := websocket.DefaultDialer.Dial(wsurl, req.Header)
	if err != nil {
		logs.Error("[%s]发起websocket连接请求失败，返回错误:%s", tag, err.Error())
		return nil
	}

	if httpresp.StatusCode != http.StatusSwitchingProtocols {
		logs.Error("[%s]发起websocket连接请求失败，返回报状态码:%d", tag, httpresp.StatusCode)
		c.Close()
		return nil
	}
	return c
}

// 一直重连到成功，exitCh关闭时返回nil
func Reconnect(wsurl string, tag string, exitCh <-chan struct{}) *websocket.Conn {
	b := &backoff.Backoff{
		Min:    500 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
	}
	for {
		c := WSConnect(wsurl, tag)
		if c != nil {
			return c
		}
		d := b.Duration()
		logs.Error("[%s]连接失败，暂停%v重连...", tag, d)
		select {
		case <-time.After(d):
		case <-exitCh:
			return nil
		}
	}
}

/*
  收到的名字以prefix开头的消息交给fn
  连接断了就重连，exitCh关闭后退出
*/
func Watch(wsurl string, prefix string, fn func(name string, data *simplejson.Json), exitCh <-chan struct{}) {
	for {
		c := Reconnect(wsurl, "monitor", exitCh)
		if c == nil {
			return
		}

		rgc := make(chan int)
		go watchReadLoop(c, rgc, prefix, fn)

		select {
		case <-rgc:
			c.Close()
			logs.Error("monitor watch %s restart.... ", wsurl)
		case <-exitCh:
			c.Close()
			<-rgc
			return
		}
	}
}

func watchReadLoop(c *websocket.Conn, rgc chan int, prefix string, fn func(string, *simplejson.Json)) {
	defer close(rgc)
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			logs.Error("monitor watch ws error read:%s", err.Error())
			return
		}

		js, err := simplejson.NewJson(message)
		if err != nil {
			logs.Error("monitor watch parse json error:%s, json: %s", err.Error(), message)
			continue
		}

		name := js.Get("name").MustString()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		fn(name, js.Get("data"))
	}
}
