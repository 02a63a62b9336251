package command

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, id ID) Descriptor {
	t.Helper()
	d, err := newTestRegistry(t).Resolve(id)
	require.NoError(t, err)
	return d
}

func TestBuildServerTime(t *testing.T) {
	req, err := Build(mustResolve(t, ServerTime), nil, time.UnixMilli(1700000000000))
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method.ToString())
	assert.Equal(t, "/v3/time", req.Target())
	assert.Equal(t, "1700000000000", req.Timestamp)
	assert.False(t, req.HasBody())
}

func TestBuildPathAndQuery(t *testing.T) {
	testCases := []struct {
		name       string
		id         ID
		params     Params
		wantPath   string
		wantTarget string
	}{
		{
			name:       "order book with level",
			id:         OrderBook,
			params:     Params{"marketId": "BTC-AUD", "level": "2"},
			wantPath:   "/v3/markets/BTC-AUD/orderbook",
			wantTarget: "/v3/markets/BTC-AUD/orderbook?level=2",
		},
		{
			name:       "path values are escaped",
			id:         OrderDetails,
			params:     Params{"id": "12/34"},
			wantPath:   "/v3/orders/12%2F34",
			wantTarget: "/v3/orders/12%2F34",
		},
		{
			name:       "fixed query only",
			id:         OpenOrders,
			params:     Params{},
			wantPath:   "/v3/orders",
			wantTarget: "/v3/orders?status=open",
		},
		{
			name:       "fixed and optional query",
			id:         Orders,
			params:     Params{"marketId": "ETH-AUD", "limit": "20"},
			wantPath:   "/v3/orders",
			wantTarget: "/v3/orders?limit=20&marketId=ETH-AUD&status=all",
		},
		{
			name:       "cancel by market uses the query string",
			id:         CancelMarketOrders,
			params:     Params{"marketId": "BTC-AUD,ETH-AUD"},
			wantPath:   "/v3/orders",
			wantTarget: "/v3/orders?marketId=BTC-AUD%2CETH-AUD",
		},
		{
			name:       "blank optional params are dropped",
			id:         Trades,
			params:     Params{"marketId": "  ", "orderId": "77"},
			wantPath:   "/v3/trades",
			wantTarget: "/v3/trades?orderId=77",
		},
		{
			name:       "transactions for a coin",
			id:         Transactions,
			params:     Params{"assetName": "XRP"},
			wantPath:   "/v3/accounts/me/transactions",
			wantTarget: "/v3/accounts/me/transactions?assetName=XRP",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Build(mustResolve(t, tc.id), tc.params, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tc.wantPath, req.Path)
			assert.Equal(t, tc.wantTarget, req.Target())
			assert.False(t, req.HasBody())
		})
	}
}

func TestBuildPlaceOrderBody(t *testing.T) {
	req, err := Build(mustResolve(t, PlaceOrder), Params{
		"marketId":      "BTC-AUD",
		"price":         "50000.50",
		"amount":        "0.0100",
		"type":          "limit",
		"side":          "bid",
		"clientOrderId": "my-order-1",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "POST", req.Method.ToString())
	assert.Equal(t, "/v3/orders", req.Target())
	assert.JSONEq(t, `{
		"marketId": "BTC-AUD",
		"price": "50000.5",
		"amount": "0.01",
		"type": "Limit",
		"side": "Bid",
		"clientOrderId": "my-order-1"
	}`, req.BodyString())
}

func TestBuildPlaceOrderDefaults(t *testing.T) {
	req, err := Build(mustResolve(t, PlaceOrder), Params{
		"marketId": "BTC-AUD",
		"amount":   "1",
		"side":     "Ask",
	}, time.Now())
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "Limit", body["type"])
	assert.Equal(t, "Ask", body["side"])
	assert.NotEmpty(t, body["clientOrderId"])
	_, hasPrice := body["price"]
	assert.False(t, hasPrice)
}

func TestBuildReplaceOrder(t *testing.T) {
	req, err := Build(mustResolve(t, ReplaceOrder), Params{
		"id":            "7001",
		"price":         "100",
		"amount":        "2",
		"clientOrderId": "abc",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "PUT", req.Method.ToString())
	assert.Equal(t, "/v3/orders/7001", req.Path)
	assert.JSONEq(t, `{"price":"100","amount":"2","clientOrderId":"abc"}`, req.BodyString())
}

func TestBuildDeleteHasNoBody(t *testing.T) {
	req, err := Build(mustResolve(t, CancelOrder), Params{"id": "1234568"}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "/v3/orders/1234568", req.Path)
	assert.Nil(t, req.Body)
}

func TestBuildRejectsBadParams(t *testing.T) {
	testCases := []struct {
		name   string
		id     ID
		params Params
		param  string
	}{
		{name: "price not a number", id: PlaceOrder, params: Params{"marketId": "BTC-AUD", "amount": "1", "side": "Bid", "price": "abc"}, param: "price"},
		{name: "negative amount", id: PlaceOrder, params: Params{"marketId": "BTC-AUD", "amount": "-1", "side": "Bid"}, param: "amount"},
		{name: "unknown side", id: PlaceOrder, params: Params{"marketId": "BTC-AUD", "amount": "1", "side": "Sell"}, param: "side"},
		{name: "limit not an int", id: Deposits, params: Params{"limit": "ten"}, param: "limit"},
		{name: "undeclared param", id: ServerTime, params: Params{"status": "all"}, param: "status"},
		{name: "bad level", id: OrderBook, params: Params{"marketId": "BTC-AUD", "level": "9"}, param: "level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := Build(mustResolve(t, tc.id), tc.params, time.Now())
			var invalid *InvalidParameterError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.param, invalid.Param)
			assert.True(t, IsInvocationError(err))
			assert.Nil(t, req)
		})
	}
}

func TestBuildMissingParameter(t *testing.T) {
	_, err := Build(mustResolve(t, OrderBook), Params{"marketId": ""}, time.Now())
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, OrderBook, missing.Command)
	assert.Equal(t, "marketId", missing.Param)
}

func TestResolvePathGuardsUnresolvedPlaceholders(t *testing.T) {
	// bypasses the registry on purpose: a descriptor whose placeholder has no param
	d := Descriptor{ID: "broken", Path: "/v3/markets/{marketId}/orderbook"}

	_, err := resolvePath(d, Params{})
	var unresolved *UnresolvedPlaceholderError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "/v3/markets/{marketId}/orderbook", unresolved.Path)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"marketId"}, Placeholders("/v3/markets/{marketId}/orderbook"))
	assert.Equal(t, []string{"a", "b"}, Placeholders("/x/{a}/{b}"))
	assert.Empty(t, Placeholders("/v3/time"))
}
