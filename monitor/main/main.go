package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/monitor"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
	simplejson "github.com/bitly/go-simplejson"
)

/*
  监控客户端，打印krang推送的策略状态
*/
func main() {
	utils.InitCnf()
	utils.InitLogger("monitor", logs.LevelInfo)

	addr := flag.String("addr", "", "krang monitor address, default from config")
	prefix := flag.String("prefix", "gaprev.", "event name prefix")
	flag.Parse()

	if *addr == "" {
		*addr = config.T.Monitor.Addr
	}
	wsurl := "ws://" + *addr + "/ws"

	exitCh := make(chan struct{})
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sc
		close(exitCh)
	}()

	monitor.Watch(wsurl, *prefix, func(name string, data *simplejson.Json) {
		b, _ := data.EncodePretty()
		fmt.Printf("[%s]\n%s\n", name, b)
	}, exitCh)
}
