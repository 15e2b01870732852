package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/adan830/vnpy/config"
	"github.com/astaxie/beego/logs"
	"github.com/joho/godotenv"
)

const (
	ENV_CNF_PATH     = "KRANG_CNF"
	ENV_KAFKA_BROKER = "KAFKA_BROKER"
	DEFAULT_CNF_PATH = "./conf/app.json"
)

/*
 加载配置，.env文件可选
 KRANG_CNF 指定配置文件，KAFKA_BROKER 覆盖配置里的broker
 加载失败直接退出进程
*/
func InitCnf() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println("load .env error:", err)
	}

	fn := os.Getenv(ENV_CNF_PATH)
	if fn == "" {
		fn = DEFAULT_CNF_PATH
	}
	if err := config.T.LoadConfig(fn); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
	if b := os.Getenv(ENV_KAFKA_BROKER); b != "" {
		config.T.Broker = b
	}
}

func InitLogger(name string, level int) {
	fn := config.T.LogPath + name + ".log"
	s := fmt.Sprintf(`{"filename":"%s","daily":true,"maxdays":10,"level":%d}`, fn, level)
	logs.SetLogger(logs.AdapterFile, s)
	logs.SetLogger(logs.AdapterConsole)
	logs.SetLevel(level)
	logs.EnableFuncCallDepth(true)
	logs.SetLogFuncCallDepth(3)
}

// 交易所时区，配置错误时使用本地时区
func ExchangeLocation() *time.Location {
	loc, err := time.LoadLocation(config.T.Exchange.Timezone)
	if err != nil {
		logs.Error("load timezone [%s] error [%s], use local", config.T.Exchange.Timezone, err.Error())
		return time.Local
	}
	return loc
}
