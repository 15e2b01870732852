package replay

import (
	"errors"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

/*
 回放stg落地的行情
 按交易日顺序一个目录一个目录读，全部读完后关闭消息队列，krang读到队列关闭就退出
*/

var dbName = "quote"
var countKey []byte = []byte("-1")

var errStopped = errors.New("replay stopped")

const max_ch_len = 100

////////////////////////////////////////////////////////////////////////////////////////////////////

type replayFile struct {
	ex  string
	day string
	db  *leveldb.DB
}

type Replay struct {
	msgq  chan *sarama.ConsumerMessage
	files []*replayFile
}

func NewReplay() *Replay {
	return &Replay{
		msgq:  make(chan *sarama.ConsumerMessage, max_ch_len),
		files: make([]*replayFile, 0),
	}
}

func (r *Replay) ReadMessages() <-chan *sarama.ConsumerMessage {
	return r.msgq
}

////////////////////////////////////////////////////////////////////////////////////////////////////

/*
 ch关闭时提前结束回放
*/
func StartReplay(stgPath string, exchanges []string, days []string, ch chan int) (*Replay, error) {
	if len(days) <= 0 {
		return nil, fmt.Errorf("no replay days")
	}

	r := NewReplay()
	if err := openFiles(r, stgPath, exchanges, days); err != nil {
		closeFiles(r)
		return nil, err
	}

	go readLoop(r, ch)
	return r, nil
}

// 一个交易日内按交易所顺序
func makeupReplayDir(dataDir string, ex string, day string) string {
	return dataDir + ex + "/" + day + "/" + dbName
}

// 打开每一个目录文件, 不存在会报错
func openFiles(r *Replay, dataDir string, exchanges []string, days []string) error {
	o := opt.Options{ErrorIfMissing: true, ReadOnly: true}
	for _, d := range days {
		for _, ex := range exchanges {
			filename := makeupReplayDir(dataDir, ex, d)
			db, err := leveldb.OpenFile(filename, &o)
			if err != nil {
				logs.Error("open leveldb file error [%s], file[%s]", err.Error(), filename)
				return fmt.Errorf("open replay [%s]: %w", filename, err)
			}
			r.files = append(r.files, &replayFile{ex: ex, day: d, db: db})
		}
	}
	return nil
}

func closeFiles(r *Replay) {
	for _, f := range r.files {
		f.db.Close()
	}
}

func readLoop(r *Replay, ch chan int) {
	defer doExit(r)

	total := len(r.files)
	for i, f := range r.files {
		logs.Info("正在回放第[%d]个目录[%s %s]，共[%d]个目录", i+1, f.ex, f.day, total)
		err := readOneFile(r, f, ch)
		if err != nil {
			logs.Error("回放[%s %s]中止: %s", f.ex, f.day, err.Error())
			return
		}
		logs.Info("第[%d]个目录回放完毕", i+1)
	}
}

func doExit(r *Replay) {
	closeFiles(r)
	close(r.msgq)
	logs.Info("replay read loop exit...")
}

func readOneFile(r *Replay, f *replayFile, ch chan int) error {
	tdata, err := f.db.Get(countKey, nil)
	if err != nil {
		logs.Error("读取countkey失败")
		return err
	}
	total := utils.BytesToUint(tdata)
	logs.Info("共有[%d]条记录", total)

	var i uint64
	for i = 0; i < total; i++ {
		val, err := f.db.Get(utils.UintTobytes(i), nil)
		if err != nil {
			logs.Error("读取[%d]条记录时失败", i)
			return err
		}

		msg := &sarama.ConsumerMessage{
			Key:   []byte(f.ex),
			Value: sarama.ByteEncoder(val),
		}
		select {
		case r.msgq <- msg:
		case <-ch:
			return errStopped
		}
	}
	return nil
}
