package command

import (
	"regexp"
	"strings"

	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/samber/lo"
)

// ID identifies one supported API operation.
type ID string

func (id ID) ToString() string {
	return string(id)
}

const (
	Balances           ID = "balances"
	TradingFees        ID = "trading-fees"
	Transactions       ID = "transactions"
	Markets            ID = "markets"
	Ticker             ID = "ticker"
	OrderBook          ID = "orderbook"
	Orders             ID = "orders"
	OpenOrders         ID = "open-orders"
	OrderDetails       ID = "order"
	PlaceOrder         ID = "place-order"
	ReplaceOrder       ID = "replace-order"
	CancelOrder        ID = "cancel-order"
	CancelMarketOrders ID = "cancel-market-orders"
	Trades             ID = "trades"
	Deposits           ID = "deposits"
	Withdrawals        ID = "withdrawals"
	Transfers          ID = "transfers"
	DepositAddress     ID = "deposit-address"
	WithdrawalFees     ID = "withdrawal-fees"
	Assets             ID = "assets"
	ServerTime         ID = "time"
)

// Kind is the value type a parameter must parse as.
type Kind string

const (
	KindString  Kind = "string"
	KindDecimal Kind = "decimal"
	KindInt     Kind = "int"
	KindEnum    Kind = "enum"
)

// Location says where a parameter ends up in the request.
type Location string

const (
	InPath  Location = "path"
	InQuery Location = "query"
	InBody  Location = "body"
)

type ParamSpec struct {
	Name     string
	Prompt   string
	Kind     Kind
	Required bool
	In       Location
	// Options lists the accepted values of an enum parameter.
	Options []string
	Default string
}

// Params carries raw parameter values keyed by ParamSpec.Name.
type Params map[string]string

func (p Params) Get(name string) (string, bool) {
	v, ok := p[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (p Params) GetOr(name, fallback string) string {
	if v, ok := p.Get(name); ok {
		return v
	}
	return fallback
}

// Descriptor is the static declaration of one operation's HTTP shape.
type Descriptor struct {
	ID     ID
	Title  string
	Method exchange.Method
	// Path may contain {name} placeholders, each declared as a required path param.
	Path string
	// Query holds fixed query values sent on every call.
	Query  map[string]string
	Params []ParamSpec
	// Body builds the JSON body of a POST/PUT from the normalized params. When
	// nil, the present body params are sent as a flat object.
	Body func(p Params) any
}

func (d Descriptor) Param(name string) (ParamSpec, bool) {
	return lo.Find(d.Params, func(p ParamSpec) bool {
		return p.Name == name
	})
}

func (d Descriptor) RequiredParams() []ParamSpec {
	return lo.Filter(d.Params, func(p ParamSpec, _ int) bool {
		return p.Required
	})
}

func (d Descriptor) paramsIn(loc Location) []ParamSpec {
	return lo.Filter(d.Params, func(p ParamSpec, _ int) bool {
		return p.In == loc
	})
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders returns the placeholder names of a path template in order.
func Placeholders(path string) []string {
	return lo.Map(placeholderPattern.FindAllStringSubmatch(path, -1), func(m []string, _ int) string {
		return m[1]
	})
}

func hasPlaceholderToken(path string) bool {
	return strings.ContainsAny(path, "{}")
}
