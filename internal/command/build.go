package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/KNICEX/btcmarkets-cli/pkg/decimalx"
	"github.com/samber/lo"
)

// Build turns a descriptor and raw parameter values into a request ready to be
// signed. now is sampled by the caller exactly once per call; its unix millis
// become the request timestamp.
func Build(d Descriptor, params Params, now time.Time) (*exchange.Request, error) {
	values, err := normalize(d, params)
	if err != nil {
		return nil, err
	}

	path, err := resolvePath(d, values)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, v := range d.Query {
		query.Set(k, v)
	}
	for _, p := range d.paramsIn(InQuery) {
		if v, ok := values.Get(p.Name); ok {
			query.Set(p.Name, v)
		}
	}

	req := &exchange.Request{
		Method:    d.Method,
		Path:      path,
		Query:     query,
		Timestamp: strconv.FormatInt(now.UnixMilli(), 10),
	}

	if d.Method.CarriesBody() {
		body, err := json.Marshal(buildBody(d, values))
		if err != nil {
			return nil, fmt.Errorf("command %s: encode body: %w", d.ID, err)
		}
		req.Body = body
	}
	return req, nil
}

// normalize applies defaults, checks presence and parses typed values. The
// returned Params only hold declared, present, canonical values.
func normalize(d Descriptor, params Params) (Params, error) {
	for name, value := range params {
		if _, ok := d.Param(name); !ok {
			return nil, &InvalidParameterError{Command: d.ID, Param: name, Value: value, Reason: "not accepted by this command"}
		}
	}

	values := make(Params, len(d.Params))
	for _, p := range d.Params {
		raw := strings.TrimSpace(params.GetOr(p.Name, p.Default))
		if raw == "" {
			if p.Required {
				return nil, &MissingParameterError{Command: d.ID, Param: p.Name}
			}
			continue
		}

		value, err := parseValue(p, raw)
		if err != nil {
			return nil, &InvalidParameterError{Command: d.ID, Param: p.Name, Value: raw, Reason: err.Error()}
		}
		values[p.Name] = value
	}
	return values, nil
}

func parseValue(p ParamSpec, raw string) (string, error) {
	switch p.Kind {
	case KindDecimal:
		d, err := decimalx.ParsePositive(raw)
		if err != nil {
			return "", err
		}
		return decimalx.Canonical(d), nil
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", fmt.Errorf("not an integer")
		}
		return strconv.FormatInt(n, 10), nil
	case KindEnum:
		opt, ok := lo.Find(p.Options, func(o string) bool {
			return strings.EqualFold(o, raw)
		})
		if !ok {
			return "", fmt.Errorf("must be one of %s", strings.Join(p.Options, ", "))
		}
		return opt, nil
	default:
		return raw, nil
	}
}

func resolvePath(d Descriptor, values Params) (string, error) {
	path := placeholderPattern.ReplaceAllStringFunc(d.Path, func(token string) string {
		name := token[1 : len(token)-1]
		if v, ok := values.Get(name); ok {
			return url.PathEscape(v)
		}
		return token
	})
	if hasPlaceholderToken(path) {
		return "", &UnresolvedPlaceholderError{Command: d.ID, Path: path}
	}
	return path, nil
}

func buildBody(d Descriptor, values Params) any {
	if d.Body != nil {
		return d.Body(values)
	}
	return bodyOf(values, lo.Map(d.paramsIn(InBody), func(p ParamSpec, _ int) string {
		return p.Name
	})...)
}

// bodyOf collects the present values of names into a flat JSON object.
func bodyOf(values Params, names ...string) map[string]string {
	body := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := values.Get(name); ok {
			body[name] = v
		}
	}
	return body
}
