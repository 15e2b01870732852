package protocol

const (

	// 行情--分笔
	FID_QUOTE_TICK = 1000

	// 下单请求
	FID_ReqSetOrder = 2005

	// 撤单请求
	FID_ReqCancelOrder = 2009

	// 委托回报，下单和撤单后网关都会推送
	FID_RspOrder = 2010
)
