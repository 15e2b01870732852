package gaprev

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_AMPLITUDE      = 3    // 逆势开仓阈值，跳数
	DEFAULT_STOP_THRESHOLD = 0.02 // 逆势止损阈值
	DEFAULT_MAX_OPEN_COUNT = 4
	DEFAULT_TRADE_VOLUME   = 1
	DEFAULT_SIZE           = 10
	DEFAULT_TICK_PRICE     = 5 // 最小变动价格
	DEFAULT_FLATTEN_START  = "14:59:30"
	DEFAULT_FLATTEN_END    = "15:00:00"
	DEFAULT_TIMEZONE       = "Asia/Shanghai"
)

// 单个合约的策略参数
type Setting struct {
	Name          string  `yaml:"name"`
	ClassName     string  `yaml:"className"`
	Author        string  `yaml:"author"`
	VtSymbol      string  `yaml:"vtSymbol"`
	Exchange      string  `yaml:"exchange"`
	Symbol        string  `yaml:"symbol"`
	ContractType  string  `yaml:"contractType"`
	Trading       bool    `yaml:"trading"` // 初始化后自动开始交易
	Amplitude     int     `yaml:"amplitude"`
	StopThreshold float64 `yaml:"stopThreshold"`
	TradeVolume   int     `yaml:"tradeVolume"`
	MaxOpenCount  int     `yaml:"maxOpenCount"` // 只展示，不限制
	Size          int     `yaml:"size"`
	TickPrice     float64 `yaml:"tickPrice"`
	FlattenStart  string  `yaml:"flattenStart"` // 收盘清仓时间段(start, end]
	FlattenEnd    string  `yaml:"flattenEnd"`
	Timezone      string  `yaml:"timezone"`

	/* validate解析好的，New直接用 */
	flattenStart int // 一天中的秒数
	flattenEnd   int
	loc          *time.Location
}

type settingFile struct {
	Strategies []*Setting `yaml:"strategies"`
}

func LoadSettings(fn string) ([]*Setting, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("read gaprev settings: %w", err)
	}

	sf := &settingFile{}
	if err := yaml.Unmarshal(data, sf); err != nil {
		return nil, fmt.Errorf("parse gaprev settings [%s]: %w", fn, err)
	}
	if len(sf.Strategies) <= 0 {
		return nil, fmt.Errorf("gaprev settings [%s] is empty", fn)
	}

	names := make(map[string]bool)
	for i, s := range sf.Strategies {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("gaprev setting #%d: %w", i, err)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("gaprev setting #%d: duplicated name [%s]", i, s.Name)
		}
		names[s.Name] = true
	}
	return sf.Strategies, nil
}

func DefaultSetting(exchange string, symbol string, contractType string) *Setting {
	s := &Setting{
		Exchange:     exchange,
		Symbol:       symbol,
		ContractType: contractType,
	}
	if err := s.validate(); err != nil {
		panic(err)
	}
	return s
}

func (s *Setting) Sinfo() krang.Sinfo {
	return krang.Sinfo{
		Exchange:     s.Exchange,
		Symbol:       s.Symbol,
		ContractType: s.ContractType,
	}
}

/*
 补全默认值并检查
*/
func (s *Setting) validate() error {
	if s.Exchange == "" || s.Symbol == "" || s.ContractType == "" {
		return errors.New("exchange, symbol and contractType are required")
	}
	if s.VtSymbol == "" {
		s.VtSymbol = s.Symbol + s.ContractType
	}
	if s.Name == "" {
		s.Name = THIS_STRATEGY_NAME + "_" + s.VtSymbol
	}
	if s.ClassName == "" {
		s.ClassName = "GapRevStrategy"
	}
	if s.Amplitude == 0 {
		s.Amplitude = DEFAULT_AMPLITUDE
	}
	if s.StopThreshold == 0 {
		s.StopThreshold = DEFAULT_STOP_THRESHOLD
	}
	if s.MaxOpenCount == 0 {
		s.MaxOpenCount = DEFAULT_MAX_OPEN_COUNT
	}
	if s.TradeVolume == 0 {
		s.TradeVolume = DEFAULT_TRADE_VOLUME
	}
	if s.Size == 0 {
		s.Size = DEFAULT_SIZE
	}
	if s.TickPrice == 0 {
		s.TickPrice = DEFAULT_TICK_PRICE
	}
	if s.FlattenStart == "" {
		s.FlattenStart = DEFAULT_FLATTEN_START
	}
	if s.FlattenEnd == "" {
		s.FlattenEnd = DEFAULT_FLATTEN_END
	}
	if s.Timezone == "" {
		s.Timezone = DEFAULT_TIMEZONE
	}

	// 顺势阈值是amplitude-1跳
	if s.Amplitude < 2 {
		return fmt.Errorf("[%s] amplitude must be >= 2, got %d", s.Name, s.Amplitude)
	}
	if s.StopThreshold <= 0 || s.StopThreshold >= 1 {
		return fmt.Errorf("[%s] stopThreshold out of (0, 1): %v", s.Name, s.StopThreshold)
	}
	if s.TradeVolume <= 0 || s.TickPrice <= 0 {
		return fmt.Errorf("[%s] tradeVolume and tickPrice must be positive", s.Name)
	}

	start, err := parseClock(s.FlattenStart)
	if err != nil {
		return fmt.Errorf("[%s] flattenStart: %w", s.Name, err)
	}
	end, err := parseClock(s.FlattenEnd)
	if err != nil {
		return fmt.Errorf("[%s] flattenEnd: %w", s.Name, err)
	}
	if start >= end {
		return fmt.Errorf("[%s] flatten window [%s, %s] is empty", s.Name, s.FlattenStart, s.FlattenEnd)
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fmt.Errorf("[%s] timezone: %w", s.Name, err)
	}

	s.flattenStart = start
	s.flattenEnd = end
	s.loc = loc
	return nil
}

// 一天中的秒数
func parseClock(s string) (int, error) {
	t, err := time.Parse(protocol.CLOCK_LAYOUT_STR, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}
