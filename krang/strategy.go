package krang

type Strategy interface {
	Name() string

	/*
		策略初始化函数，每个交易日开始时调用
		返回错误时策略不能交易
	*/
	Init(ctx Context) error

	// 开始和停止交易，停止后OnTick不做任何决策
	Start()
	Stop()

	/*
	  行情更新函数
	*/
	OnTick(ctx Context, tick *Tick)

	/*
	  委托回报，只会收到本策略下的单
	*/
	OnOrder(ctx Context, order *Order)
}

/*
  初始化后是否自动开始交易，策略可以不实现
*/
type AutoStarter interface {
	AutoStart() bool
}

type StrategyManager struct {
	m     map[string]Strategy
	names []string // 注册顺序
}

var stmgr = newStrategyMgr()

func newStrategyMgr() *StrategyManager {
	return &StrategyManager{
		m: make(map[string]Strategy),
	}
}

func GetStrategyMgr() *StrategyManager {
	return stmgr
}

func (t *StrategyManager) Get(name string) Strategy {
	return t.m[name]
}

func (t *StrategyManager) Each(f func(name string, st Strategy)) {
	for _, name := range t.names {
		f(name, t.m[name])
	}
}

func RegisterStrategy(name string, st Strategy) {
	if name == "" || st == nil {
		panic("RegisterStrategy panic, parameter error")
	}

	if _, dup := stmgr.m[name]; dup {
		panic("Register one Strategy for twice")
	}
	stmgr.m[name] = st
	stmgr.names = append(stmgr.names, name)
}
