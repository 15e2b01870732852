package config

import (
	"fmt"

	"github.com/astaxie/beego/config"
)

/*
 app配置，json格式，多级key用::分隔
 数组类的配置用;分隔，比如 "exchanges": "shfe;dce"
*/
type AppCnf struct {
	AppID     int
	LogPath   string
	CnfPath   string
	Broker    string
	StgPath   string
	BarDBPath string
	Exchanges []string

	Strategy struct {
		Settings string // 策略参数yaml文件
	}

	Monitor struct {
		Addr string
	}

	Exchange struct {
		Timezone string
	}

	Replay struct {
		Days []string
	}
}

const DEFAULT_TIMEZONE = "Asia/Shanghai"

var T *AppCnf

func (c *AppCnf) LoadConfig(cnfPath string) error {
	cnf, err := config.NewConfig("json", cnfPath)
	if err != nil {
		return fmt.Errorf("load config [%s]: %w", cnfPath, err)
	}
	c.CnfPath = cnfPath
	c.AppID = cnf.DefaultInt("appId", 1)
	c.LogPath = cnf.DefaultString("log", "./log/")
	c.Broker = cnf.String("kafka::broker")
	c.StgPath = cnf.String("stg")
	c.BarDBPath = cnf.String("bardb")
	c.Exchanges = cnf.Strings("exchanges")

	c.Strategy.Settings = cnf.String("strategy::settings")
	c.Monitor.Addr = cnf.String("monitor::addr")
	c.Exchange.Timezone = cnf.DefaultString("exchange::timezone", DEFAULT_TIMEZONE)
	c.Replay.Days = cnf.Strings("replay::days")

	if len(c.Exchanges) <= 0 {
		return fmt.Errorf("config [%s] has no exchanges", cnfPath)
	}
	return nil
}

func newAppCnf() *AppCnf {
	c := &AppCnf{
		AppID: 1,
	}
	c.Exchange.Timezone = DEFAULT_TIMEZONE
	return c
}

func init() {
	T = newAppCnf()
}
