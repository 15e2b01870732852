package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/replay"
	"github.com/adan830/vnpy/strategy/gaprev"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
)

func main() {
	utils.InitCnf()
	utils.InitLogger("replay", logs.LevelDebug)

	logs.Info("****************************************************")
	logs.Info("replay start...")
	logs.Info("appId: ", config.T.AppID)
	logs.Info("config file: ", config.T.CnfPath)
	logs.Info("replay days: ", config.T.Replay.Days)
	logs.Info("replay stay debug log level")
	logs.Info("****************************************************")

	if err := RunServer(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func RunServer() error {
	if err := gaprev.RegisStrategy(config.T.Strategy.Settings); err != nil {
		return err
	}

	ch := make(chan int)
	r, err := replay.StartReplay(config.T.StgPath, config.T.Exchanges, config.T.Replay.Days, ch)
	if err != nil {
		return err
	}

	krang.SetKrangReplay(r)
	err = krang.StartKrang(ch, true)
	if err != nil {
		close(ch)
		return err
	}

	serverLoop(ch)
	return nil
}

func serverLoop(ch chan int) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	select {
	case <-signals:
		logs.Info("recv a break signal, exit replay ...")
		close(ch)
		<-time.After(3 * time.Second)

	case <-krang.Done():
		logs.Info("replay is all done. ")
	}
}
