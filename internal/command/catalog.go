package command

import (
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/google/uuid"
)

// https://docs.btcmarkets.net/v3/

var (
	orderTypes = []string{"Limit", "Market", "Stop Limit", "Stop", "Take Profit"}
	orderSides = []string{"Bid", "Ask"}
)

func pathParam(name, prompt string) ParamSpec {
	return ParamSpec{Name: name, Prompt: prompt, Kind: KindString, Required: true, In: InPath}
}

func queryParam(name, prompt string, required bool) ParamSpec {
	return ParamSpec{Name: name, Prompt: prompt, Kind: KindString, Required: required, In: InQuery}
}

func bodyParam(name, prompt string, kind Kind, required bool) ParamSpec {
	return ParamSpec{Name: name, Prompt: prompt, Kind: kind, Required: required, In: InBody}
}

// pagingParams are the cursor params shared by the v3 list endpoints.
func pagingParams() []ParamSpec {
	return []ParamSpec{
		{Name: "before", Prompt: "Before (id)", Kind: KindInt, In: InQuery},
		{Name: "after", Prompt: "After (id)", Kind: KindInt, In: InQuery},
		{Name: "limit", Prompt: "Limit", Kind: KindInt, In: InQuery},
	}
}

func withPaging(params ...ParamSpec) []ParamSpec {
	return append(params, pagingParams()...)
}

// orderBody fills in a client order id when the operator did not give one.
func orderBody(names ...string) func(p Params) any {
	return func(p Params) any {
		body := bodyOf(p, names...)
		if _, ok := body["clientOrderId"]; !ok {
			body["clientOrderId"] = uuid.NewString()
		}
		return body
	}
}

// Catalog returns the descriptors of every supported operation, in menu order.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			ID:     Balances,
			Title:  "Account balances",
			Method: exchange.MethodGet,
			Path:   "/v3/accounts/me/balances",
		},
		{
			ID:     TradingFees,
			Title:  "Trading fees",
			Method: exchange.MethodGet,
			Path:   "/v3/accounts/me/trading-fees",
		},
		{
			ID:     Transactions,
			Title:  "Account transactions",
			Method: exchange.MethodGet,
			Path:   "/v3/accounts/me/transactions",
			Params: withPaging(queryParam("assetName", "Asset (e.g. BTC)", true)),
		},
		{
			ID:     Markets,
			Title:  "Markets",
			Method: exchange.MethodGet,
			Path:   "/v3/markets",
		},
		{
			ID:     Ticker,
			Title:  "Market ticker",
			Method: exchange.MethodGet,
			Path:   "/v3/markets/{marketId}/ticker",
			Params: []ParamSpec{pathParam("marketId", "Market ID (e.g. BTC-AUD)")},
		},
		{
			ID:     OrderBook,
			Title:  "Order book",
			Method: exchange.MethodGet,
			Path:   "/v3/markets/{marketId}/orderbook",
			Params: []ParamSpec{
				pathParam("marketId", "Market ID (e.g. BTC-AUD)"),
				{Name: "level", Prompt: "Level", Kind: KindEnum, In: InQuery, Options: []string{"1", "2", "3"}},
			},
		},
		{
			ID:     Orders,
			Title:  "Order history",
			Method: exchange.MethodGet,
			Path:   "/v3/orders",
			Query:  map[string]string{"status": "all"},
			Params: withPaging(queryParam("marketId", "Market ID", false)),
		},
		{
			ID:     OpenOrders,
			Title:  "Open orders",
			Method: exchange.MethodGet,
			Path:   "/v3/orders",
			Query:  map[string]string{"status": "open"},
			Params: []ParamSpec{queryParam("marketId", "Market ID", false)},
		},
		{
			ID:     OrderDetails,
			Title:  "Order details",
			Method: exchange.MethodGet,
			Path:   "/v3/orders/{id}",
			Params: []ParamSpec{pathParam("id", "Order ID")},
		},
		{
			ID:     PlaceOrder,
			Title:  "Place order",
			Method: exchange.MethodPost,
			Path:   "/v3/orders",
			Params: []ParamSpec{
				bodyParam("marketId", "Market ID (e.g. BTC-AUD)", KindString, true),
				bodyParam("price", "Price", KindDecimal, false),
				bodyParam("amount", "Amount", KindDecimal, true),
				{Name: "type", Prompt: "Order type", Kind: KindEnum, Required: true, In: InBody, Options: orderTypes, Default: "Limit"},
				{Name: "side", Prompt: "Side", Kind: KindEnum, Required: true, In: InBody, Options: orderSides},
				bodyParam("clientOrderId", "Client order ID", KindString, false),
			},
			Body: orderBody("marketId", "price", "amount", "type", "side", "clientOrderId"),
		},
		{
			ID:     ReplaceOrder,
			Title:  "Replace order",
			Method: exchange.MethodPut,
			Path:   "/v3/orders/{id}",
			Params: []ParamSpec{
				pathParam("id", "Order ID"),
				bodyParam("price", "Price", KindDecimal, true),
				bodyParam("amount", "Amount", KindDecimal, true),
				bodyParam("clientOrderId", "Client order ID", KindString, false),
			},
			Body: orderBody("price", "amount", "clientOrderId"),
		},
		{
			ID:     CancelOrder,
			Title:  "Cancel order by ID",
			Method: exchange.MethodDelete,
			Path:   "/v3/orders/{id}",
			Params: []ParamSpec{pathParam("id", "Order ID")},
		},
		{
			ID:     CancelMarketOrders,
			Title:  "Cancel orders by market",
			Method: exchange.MethodDelete,
			Path:   "/v3/orders",
			Params: []ParamSpec{queryParam("marketId", "Market ID(s), comma separated", true)},
		},
		{
			ID:     Trades,
			Title:  "Trade history",
			Method: exchange.MethodGet,
			Path:   "/v3/trades",
			Params: withPaging(
				queryParam("marketId", "Market ID", false),
				queryParam("orderId", "Order ID", false),
			),
		},
		{
			ID:     Deposits,
			Title:  "List deposits",
			Method: exchange.MethodGet,
			Path:   "/v3/deposits",
			Params: pagingParams(),
		},
		{
			ID:     Withdrawals,
			Title:  "List withdrawals",
			Method: exchange.MethodGet,
			Path:   "/v3/withdrawals",
			Params: pagingParams(),
		},
		{
			ID:     Transfers,
			Title:  "List deposits/withdrawals",
			Method: exchange.MethodGet,
			Path:   "/v3/transfers",
			Params: pagingParams(),
		},
		{
			ID:     DepositAddress,
			Title:  "Deposit address",
			Method: exchange.MethodGet,
			Path:   "/v3/addresses",
			Params: []ParamSpec{queryParam("assetName", "Asset (e.g. BTC)", true)},
		},
		{
			ID:     WithdrawalFees,
			Title:  "Withdrawal fees",
			Method: exchange.MethodGet,
			Path:   "/v3/withdrawal-fees",
		},
		{
			ID:     Assets,
			Title:  "Assets",
			Method: exchange.MethodGet,
			Path:   "/v3/assets",
		},
		{
			ID:     ServerTime,
			Title:  "Server time",
			Method: exchange.MethodGet,
			Path:   "/v3/time",
		},
	}
}
