package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/monitor"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/strategy/gaprev"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
)

func main() {
	utils.InitCnf()
	utils.InitLogger("krang", logs.LevelInfo)

	logs.Info("****************************************************")
	logs.Info("krang start...")
	logs.Info("Hello humna being, I'm krang from TMNT")
	logs.Info("appId: ", config.T.AppID)
	logs.Info("config file: ", config.T.CnfPath)
	logs.Info("exchange: ", config.T.Exchanges)
	logs.Info("strategy settings: ", config.T.Strategy.Settings)
	logs.Info("****************************************************")

	if err := RunServer(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func RunServer() error {
	brokers := []string{config.T.Broker}
	topics := []string{protocol.TOPIC_QUOTE_PUB, protocol.TOPIC_GATEWAY_RSP}

	kfc.InitClient(brokers)

	err := kfc.TobeProducer()
	if err != nil {
		logs.Error("Init Kafka producer error ", err.Error())
		return err
	}

	err = kfc.TobeConsumer(topics)
	if err != nil {
		logs.Error("Init Kafka consumer error ", err.Error())
		return err
	}
	logs.Info("connect to kafka broker [%s] ok ...", config.T.Broker)

	// 注册策略, 因为strategy是依赖krang的，所以如果在krang里注册会有依赖问题
	if err := gaprev.RegisStrategy(config.T.Strategy.Settings); err != nil {
		return err
	}

	var srv *monitor.Server
	if config.T.Monitor.Addr != "" {
		hub := monitor.NewHub(monitor.DEFAULT_QUEUE_SIZE)
		srv = monitor.StartServer(hub, config.T.Monitor.Addr)
		krang.SetEventSink(hub)
	}

	ch := make(chan int)
	err = krang.StartKrang(ch, false)
	if err != nil {
		return err
	}

	serverLoop(ch)
	if srv != nil {
		srv.Close()
	}
	return nil
}

func serverLoop(ch chan int) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	select {
	case <-signals:
		logs.Info("recv a break signal, exit krang...")
	case <-krang.Done():
		logs.Info("krang消息源断开")
	}
	close(ch)

	select {
	case <-krang.Done():
	case <-time.After(3 * time.Second):
	}
	kfc.ExitConsumer()
	kfc.ExitProducer()
}
