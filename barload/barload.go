/*
 barload --- 把交易所导出的日线json导入bardb

 文件格式：{"data":[{"exchange":"shfe","symbol":"rb","contractType":"1905","date":"2019-03-01",
           "open":"3700","high":"3760","low":"3690","close":"3750"}, ...]}
 价格可以是数字也可以是字符串，exchange可以不填，用命令行参数
*/
package barload

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
	simplejson "github.com/bitly/go-simplejson"
)

func LoadFile(fn string, exchange string, db bardb.BarDB) (int, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return 0, err
	}
	bars, err := Parse(data, exchange)
	if err != nil {
		return 0, fmt.Errorf("parse [%s]: %w", fn, err)
	}

	for i, bar := range bars {
		if err := db.StoreDailyBar(bar); err != nil {
			return i, err
		}
	}
	logs.Info("[%s]导入日线[%d]条", fn, len(bars))
	return len(bars), nil
}

func Parse(data []byte, exchange string) ([]bardb.DailyBar, error) {
	js, err := simplejson.NewJson(data)
	if err != nil {
		return nil, err
	}

	arr, err := js.Get("data").Array()
	if err != nil {
		return nil, fmt.Errorf("no data array: %w", err)
	}

	bars := make([]bardb.DailyBar, 0, len(arr))
	for i := range arr {
		bar, err := parseBar(js.Get("data").GetIndex(i), exchange)
		if err != nil {
			return nil, fmt.Errorf("bar #%d: %w", i, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(js *simplejson.Json, exchange string) (bardb.DailyBar, error) {
	bar := bardb.DailyBar{
		Exchange:     js.Get("exchange").MustString(exchange),
		Symbol:       js.Get("symbol").MustString(),
		ContractType: js.Get("contractType").MustString(),
		Date:         js.Get("date").MustString(),
	}
	if bar.Exchange == "" || bar.Symbol == "" || bar.ContractType == "" {
		return bar, fmt.Errorf("exchange, symbol and contractType are required")
	}
	if _, err := time.Parse(protocol.DAY_LAYOUT_STR, bar.Date); err != nil {
		return bar, fmt.Errorf("date [%s]: %w", bar.Date, err)
	}

	var err error
	if bar.Open, err = getPrice(js, "open"); err != nil {
		return bar, err
	}
	if bar.High, err = getPrice(js, "high"); err != nil {
		return bar, err
	}
	if bar.Low, err = getPrice(js, "low"); err != nil {
		return bar, err
	}
	if bar.Close, err = getPrice(js, "close"); err != nil {
		return bar, err
	}
	if bar.High < bar.Low {
		return bar, fmt.Errorf("%s %s high [%v] < low [%v]", bar.Sinfo(), bar.Date, bar.High, bar.Low)
	}
	return bar, nil
}

func getPrice(js *simplejson.Json, key string) (float64, error) {
	v, ok := js.CheckGet(key)
	if !ok {
		return 0, fmt.Errorf("missing [%s]", key)
	}
	if f, err := v.Float64(); err == nil {
		return f, nil
	}
	s, err := v.String()
	if err != nil {
		return 0, fmt.Errorf("[%s] is neither number nor string", key)
	}
	return strconv.ParseFloat(s, 64)
}
