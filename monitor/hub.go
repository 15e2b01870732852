package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/astaxie/beego/logs"
	"github.com/gorilla/websocket"
)

/*
  监控推送
  krang主协程调用Publish，只往队列里放，队列满了直接丢弃，不阻塞交易
  Run协程把消息发给所有连上来的websocket客户端
*/

const (
	DEFAULT_QUEUE_SIZE = 1024
	WRITE_TIMEOUT      = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// 推送给客户端的消息
type Event struct {
	Name string      `json:"name"`
	Time int64       `json:"time"` // 毫秒
	Data interface{} `json:"data"`
}

type Hub struct {
	lock      sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
	dropped   uint64
	exitCh    chan struct{}
	closeOnce sync.Once
}

func NewHub(queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DEFAULT_QUEUE_SIZE
	}
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, queueSize),
		exitCh:    make(chan struct{}),
	}
}

func (h *Hub) Publish(name string, v interface{}) {
	data, err := json.Marshal(&Event{
		Name: name,
		Time: time.Now().UnixNano() / int64(time.Millisecond),
		Data: v,
	})
	if err != nil {
		logs.Error("monitor 序列化[%s]失败，err[%s]", name, err.Error())
		return
	}

	select {
	case h.broadcast <- data:
	default:
		atomic.AddUint64(&h.dropped, 1)
	}
}

// 队列满丢掉的消息数
func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}

func (h *Hub) Clients() int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return len(h.clients)
}

func (h *Hub) Run() {
	for {
		select {
		case msg := <-h.broadcast:
			h.send(msg)
		case <-h.exitCh:
			h.lock.Lock()
			for c := range h.clients {
				c.Close()
				delete(h.clients, c)
			}
			h.lock.Unlock()
			return
		}
	}
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.exitCh)
	})
}

/*
  写之前拷一份客户端列表，写的时候不持锁
  只有Run协程写，不会并发写同一个连接
*/
func (h *Hub) send(msg []byte) {
	h.lock.Lock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.lock.Unlock()

	for _, c := range clients {
		c.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
		err := c.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			logs.Info("monitor 客户端[%s]断开，err[%s]", c.RemoteAddr(), err.Error())
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.clients[c] {
		c.Close()
		delete(h.clients, c)
	}
}

/*
  客户端只收不发，读协程只为了发现断线
*/
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logs.Error("monitor websocket upgrade 失败，err[%s]", err.Error())
		return
	}

	h.lock.Lock()
	h.clients[c] = true
	h.lock.Unlock()
	logs.Info("monitor 客户端[%s]连上", c.RemoteAddr())

	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				h.remove(c)
				return
			}
		}
	}()
}

type Server struct {
	hub *Hub
	srv *http.Server
}

/*
  监听addr，websocket路径是/ws
*/
func StartServer(hub *Hub, addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux}

	go hub.Run()
	go func() {
		logs.Info("monitor 监听[%s]", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Error("monitor 服务退出，err[%s]", err.Error())
		}
	}()
	return &Server{hub: hub, srv: srv}
}

func (s *Server) Close() {
	s.hub.Close()
	s.srv.Close()
}
