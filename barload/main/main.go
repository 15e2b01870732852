package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/adan830/vnpy/barload"
	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
)

func main() {
	utils.InitCnf()
	utils.InitLogger("barload", logs.LevelInfo)

	ex := flag.String("ex", "", "default exchange of bars")
	flag.Parse()
	if flag.NArg() <= 0 {
		fmt.Println("usage: barload [-ex shfe] file.json ...")
		os.Exit(-1)
	}

	db := bardb.OpenShared(config.T.BarDBPath)
	for _, fn := range flag.Args() {
		n, err := barload.LoadFile(fn, *ex, db)
		if err != nil {
			fmt.Printf("load [%s] error after %d bars: %s\n", fn, n, err.Error())
			os.Exit(-1)
		}
		fmt.Printf("load [%s] %d bars\n", fn, n)
	}
}
