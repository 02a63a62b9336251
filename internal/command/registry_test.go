package command

import (
	"testing"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewDefaultRegistry()
	require.NoError(t, err)
	return r
}

func TestRegistryResolve(t *testing.T) {
	r := newTestRegistry(t)

	d, err := r.Resolve(ServerTime)
	require.NoError(t, err)
	assert.Equal(t, exchange.MethodGet, d.Method)
	assert.Equal(t, "/v3/time", d.Path)

	_, err = r.Resolve(ID("zzz"))
	var unknown *UnknownCommandError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, ID("zzz"), unknown.ID)
}

func TestRegistryKeepsCatalogOrder(t *testing.T) {
	r := newTestRegistry(t)
	catalog := Catalog()
	require.Equal(t, len(catalog), r.Len())
	for i, id := range r.IDs() {
		assert.Equal(t, catalog[i].ID, id)
	}
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	testCases := []struct {
		name  string
		descs []Descriptor
	}{
		{
			name: "duplicate id",
			descs: []Descriptor{
				{ID: "a", Method: exchange.MethodGet, Path: "/v3/time"},
				{ID: "a", Method: exchange.MethodGet, Path: "/v3/assets"},
			},
		},
		{
			name:  "empty id",
			descs: []Descriptor{{Method: exchange.MethodGet, Path: "/v3/time"}},
		},
		{
			name:  "undeclared placeholder",
			descs: []Descriptor{{ID: "a", Method: exchange.MethodGet, Path: "/v3/markets/{marketId}/orderbook"}},
		},
		{
			name: "placeholder backed by a query param",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodGet, Path: "/v3/orders/{id}",
				Params: []ParamSpec{{Name: "id", Kind: KindString, Required: true, In: InQuery}},
			}},
		},
		{
			name: "optional path param",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodGet, Path: "/v3/orders/{id}",
				Params: []ParamSpec{{Name: "id", Kind: KindString, In: InPath}},
			}},
		},
		{
			name: "path param without placeholder",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodDelete, Path: "/v3/orders/",
				Params: []ParamSpec{pathParam("id", "Order ID")},
			}},
		},
		{
			name:  "malformed placeholder",
			descs: []Descriptor{{ID: "a", Method: exchange.MethodGet, Path: "/v2/order/open[/{instrument"}},
		},
		{
			name: "body param on GET",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodGet, Path: "/v3/orders",
				Params: []ParamSpec{bodyParam("price", "Price", KindDecimal, true)},
			}},
		},
		{
			name: "enum without options",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodGet, Path: "/v3/orders",
				Params: []ParamSpec{{Name: "side", Kind: KindEnum, In: InQuery}},
			}},
		},
		{
			name: "duplicate param",
			descs: []Descriptor{{
				ID: "a", Method: exchange.MethodGet, Path: "/v3/orders",
				Params: []ParamSpec{queryParam("marketId", "", false), queryParam("marketId", "", true)},
			}},
		},
		{
			name:  "unsupported method",
			descs: []Descriptor{{ID: "a", Method: "PATCH", Path: "/v3/orders"}},
		},
		{
			name:  "relative path",
			descs: []Descriptor{{ID: "a", Method: exchange.MethodGet, Path: "v3/orders"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistry(tc.descs...)
			assert.ErrorIs(t, err, ErrInvalidDescriptor)
			assert.Nil(t, r)
		})
	}
}

// sampleValue returns a value that passes validation for p.
func sampleValue(p ParamSpec) string {
	switch p.Kind {
	case KindDecimal:
		return "1.5"
	case KindInt:
		return "10"
	case KindEnum:
		return p.Options[0]
	default:
		return "X-" + p.Name
	}
}

func TestEveryCommandResolvesAllPlaceholders(t *testing.T) {
	r := newTestRegistry(t)
	now := time.UnixMilli(1700000000000)

	for _, d := range r.Descriptors() {
		t.Run(d.ID.ToString(), func(t *testing.T) {
			params := Params{}
			for _, p := range d.RequiredParams() {
				params[p.Name] = sampleValue(p)
			}

			req, err := Build(d, params, now)
			require.NoError(t, err)
			assert.NotContains(t, req.Path, "{")
			assert.NotContains(t, req.Path, "}")
			assert.Equal(t, d.Method, req.Method)
			assert.Equal(t, "1700000000000", req.Timestamp)
			assert.Equal(t, d.Method.CarriesBody(), req.HasBody())
		})
	}
}

func TestEveryRequiredParamIsEnforced(t *testing.T) {
	r := newTestRegistry(t)

	for _, d := range r.Descriptors() {
		for _, missing := range d.RequiredParams() {
			if missing.Default != "" {
				continue
			}
			t.Run(d.ID.ToString()+"/"+missing.Name, func(t *testing.T) {
				params := Params{}
				for _, p := range d.RequiredParams() {
					if p.Name != missing.Name {
						params[p.Name] = sampleValue(p)
					}
				}

				req, err := Build(d, params, time.Now())
				var missingErr *MissingParameterError
				require.ErrorAs(t, err, &missingErr)
				assert.Equal(t, d.ID, missingErr.Command)
				assert.Equal(t, missing.Name, missingErr.Param)
				assert.Nil(t, req)
			})
		}
	}
}
