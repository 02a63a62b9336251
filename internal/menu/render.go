package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KNICEX/btcmarkets-cli/internal/command"
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/logrusorgru/aurora"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Render writes a result for display: the payload on success, the normalized
// error otherwise.
func Render(w io.Writer, res exchange.Result, format Format) error {
	if !res.OK() {
		_, err := fmt.Fprintln(w, aurora.Red(describeError(res.Err)))
		return err
	}

	out, err := encode(res.Payload, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func encode(payload any, format Format) (string, error) {
	if format == FormatYAML {
		// round trip through JSON so json.Number renders as a plain scalar
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		var plain any
		if err := yaml.Unmarshal(raw, &plain); err != nil {
			return "", err
		}
		out, err := yaml.Marshal(plain)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(out), "\n"), nil
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func describeError(err error) string {
	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) {
		switch {
		case !apiErr.HasStatus():
			return fmt.Sprintf("Request failed: %s", apiErr.Message)
		case apiErr.Code != "":
			return fmt.Sprintf("HTTP %d %s: %s", apiErr.StatusCode, apiErr.Code, apiErr.Message)
		default:
			return fmt.Sprintf("HTTP %d: %s", apiErr.StatusCode, apiErr.Message)
		}
	}
	if command.IsInvocationError(err) {
		return fmt.Sprintf("Invalid command: %s", err)
	}
	return fmt.Sprintf("Error: %s", err)
}
