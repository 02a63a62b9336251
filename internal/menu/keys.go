package menu

import (
	"github.com/KNICEX/btcmarkets-cli/internal/command"
)

// Entry binds a menu key to a command. Preset params are not prompted for.
type Entry struct {
	Key    string
	Title  string
	ID     command.ID
	Preset command.Params
}

const (
	QuitKey     = "q"
	SnapshotKey = "s"
	JournalKey  = "j"
)

// DefaultEntries is the key map shown by the interactive menu.
func DefaultEntries() []Entry {
	return []Entry{
		{Key: "1", ID: command.Balances},
		{Key: "2", ID: command.OrderDetails},
		{Key: "3", ID: command.OrderBook},
		{Key: "4", ID: command.Orders},
		{Key: "5", ID: command.Trades},
		{Key: "6", ID: command.OpenOrders},
		{Key: "7", ID: command.Ticker},
		{Key: "8", ID: command.Markets},
		{Key: "9", ID: command.DepositAddress},
		{Key: "v", ID: command.Deposits},
		{Key: "k", ID: command.Withdrawals},
		{Key: "y", ID: command.Transfers},
		{Key: "t", ID: command.Transactions},
		{Key: "f", ID: command.TradingFees},
		{Key: "w", ID: command.WithdrawalFees},
		{Key: "c", ID: command.Assets},
		{Key: "a", ID: command.ServerTime},
		{Key: "g", ID: command.PlaceOrder, Title: "Place buy order", Preset: command.Params{"side": "Bid"}},
		{Key: "p", ID: command.PlaceOrder, Title: "Place sell order", Preset: command.Params{"side": "Ask"}},
		{Key: "r", ID: command.ReplaceOrder},
		{Key: "l", ID: command.CancelOrder},
		{Key: "x", ID: command.CancelMarketOrders},
	}
}

// snapshotCalls are the independent reads run together by the snapshot key.
func snapshotCalls() []command.Call {
	return []command.Call{
		{ID: command.Balances},
		{ID: command.OpenOrders},
	}
}
