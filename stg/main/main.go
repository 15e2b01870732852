package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/stg"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
)

func main() {
	utils.InitCnf()
	utils.InitLogger("stg", logs.LevelInfo)

	logs.Info("****************************************************")
	logs.Info("storage start...")
	logs.Info("appId: ", config.T.AppID)
	logs.Info("config file: ", config.T.CnfPath)
	logs.Info("exchange: ", config.T.Exchanges)
	logs.Info("****************************************************")

	if err := RunServer(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func RunServer() error {
	brokers := []string{config.T.Broker}
	topics := []string{protocol.TOPIC_QUOTE_PUB}

	kfc.InitClient(brokers)
	err := kfc.TobeConsumer(topics)
	if err != nil {
		logs.Error("Init Kafka consumer error ", err.Error())
		return err
	}
	logs.Info("connect to kafka broker [%s] ok ...", config.T.Broker)

	ch := make(chan int)
	if err := stg.StartStorage(ch, kfc.ReadMessages()); err != nil {
		return err
	}

	serverLoop(ch)
	return nil
}

func serverLoop(ch chan int) {
	defer close(ch)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	tc := time.NewTimer(time.Second)
	defer tc.Stop()

	loc := utils.ExchangeLocation()
	for {
		select {
		case <-signals:
			logs.Info("recv a break signal, exit storage...")
			ch <- stg.STG_CMD_EXIT
			<-time.After(time.Second)
			kfc.ExitConsumer()
			return

		case <-tc.C:
			tc.Reset(time.Second)
			if isEndOfDay(loc) {
				ch <- stg.STG_CMD_SWITCH_TRADINGDAY
			}
		}
	}
}

// 交易所时间零点附近切换交易日，同一天重复切换会被忽略
func isEndOfDay(loc *time.Location) bool {
	t := time.Now().In(loc)
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() < 2
}
