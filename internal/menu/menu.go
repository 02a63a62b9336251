package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/command"
	"github.com/KNICEX/btcmarkets-cli/internal/entity"
	"github.com/KNICEX/btcmarkets-cli/internal/repo"
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"github.com/logrusorgru/aurora"
	"github.com/samber/lo"
)

// Runner is what the menu needs from the command layer.
type Runner interface {
	Registry() *command.Registry
	Execute(ctx context.Context, id command.ID, params command.Params) exchange.Result
	ExecuteAll(ctx context.Context, calls []command.Call) []exchange.Result
}

// Menu is the interactive front end: it maps keys to command IDs, prompts for
// parameters and renders results. It holds no request logic of its own.
type Menu struct {
	runner  Runner
	entries []Entry
	journal repo.InvocationRepo
	format  Format

	in  *bufio.Reader
	out io.Writer
}

const journalLimit = 20

type Option func(m *Menu)

func WithJournal(journal repo.InvocationRepo) Option {
	return func(m *Menu) {
		m.journal = journal
	}
}

func WithFormat(format Format) Option {
	return func(m *Menu) {
		m.format = format
	}
}

func WithEntries(entries []Entry) Option {
	return func(m *Menu) {
		m.entries = entries
	}
}

func New(runner Runner, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		runner:  runner,
		entries: DefaultEntries(),
		format:  FormatJSON,
		in:      bufio.NewReader(in),
		out:     out,
	}
	for _, opt := range opts {
		opt(m)
	}

	// drop keys whose command is not registered
	registry := runner.Registry()
	m.entries = lo.Filter(m.entries, func(e Entry, _ int) bool {
		_, err := registry.Resolve(e.ID)
		return err == nil
	})
	return m
}

// Run loops until the operator quits, input ends or ctx is done. A failed
// command is displayed and the loop goes on.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		m.printMenu()
		choice, err := m.readLine("Option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch key := strings.ToLower(strings.TrimSpace(choice)); key {
		case "":
			continue
		case QuitKey:
			return nil
		case SnapshotKey:
			m.snapshot(ctx)
		case JournalKey:
			m.showJournal(ctx)
		default:
			entry, ok := lo.Find(m.entries, func(e Entry) bool { return e.Key == key })
			if !ok {
				m.printf("%s\n", aurora.Yellow(fmt.Sprintf("Unknown option %q", choice)))
				continue
			}
			if err := m.runEntry(ctx, entry); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

func (m *Menu) runEntry(ctx context.Context, entry Entry) error {
	desc, err := m.runner.Registry().Resolve(entry.ID)
	if err != nil {
		m.render(exchange.Result{Err: err})
		return nil
	}

	m.printf("%s\n", aurora.Bold(m.title(entry, desc)))
	params, err := m.collect(desc, entry.Preset)
	if err != nil {
		return err
	}

	start := time.Now()
	res := m.runner.Execute(ctx, entry.ID, params)
	slog.Debug("command finished", "command", entry.ID, "ok", res.OK(), "elapsed", time.Since(start))
	m.render(res)
	return nil
}

// collect prompts for every param that is not preset. Empty answers are left
// out so the builder can apply defaults and report missing required values.
func (m *Menu) collect(desc command.Descriptor, preset command.Params) (command.Params, error) {
	params := command.Params{}
	for k, v := range preset {
		params[k] = v
	}

	for _, p := range desc.Params {
		if _, ok := preset[p.Name]; ok {
			continue
		}
		answer, err := m.readLine(promptFor(p))
		if err != nil {
			return nil, err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			params[p.Name] = answer
		}
	}
	return params, nil
}

func promptFor(p command.ParamSpec) string {
	var b strings.Builder
	b.WriteString(lo.Ternary(p.Prompt != "", p.Prompt, p.Name))
	if len(p.Options) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(p.Options, "/"))
	}
	if p.Default != "" {
		fmt.Fprintf(&b, " (default %s)", p.Default)
	} else if !p.Required {
		b.WriteString(" (optional)")
	}
	b.WriteString(": ")
	return b.String()
}

func (m *Menu) snapshot(ctx context.Context) {
	calls := snapshotCalls()
	results := m.runner.ExecuteAll(ctx, calls)
	for i, res := range results {
		m.printf("%s\n", aurora.Bold(calls[i].ID.ToString()))
		m.render(res)
	}
}

func (m *Menu) showJournal(ctx context.Context) {
	if m.journal == nil {
		m.printf("%s\n", aurora.Yellow("Journal is disabled"))
		return
	}
	filter, err := m.readLine("Command id (optional): ")
	if err != nil && !errors.Is(err, io.EOF) {
		m.printf("%s\n", aurora.Red(fmt.Sprintf("Read input: %s", err)))
		return
	}

	var invs []entity.Invocation
	if filter = strings.TrimSpace(filter); filter != "" {
		invs, err = m.journal.FindByCommand(ctx, filter)
	} else {
		invs, err = m.journal.Latest(ctx, journalLimit)
	}
	if err != nil {
		m.printf("%s\n", aurora.Red(fmt.Sprintf("Read journal: %s", err)))
		return
	}
	if len(invs) == 0 {
		m.printf("%s\n", aurora.Yellow("No calls recorded"))
		return
	}
	for _, inv := range invs {
		status := lo.Ternary(inv.Succeeded, aurora.Green("ok"), aurora.Red(fmt.Sprintf("failed %d %s", inv.StatusCode, inv.ErrorCode)))
		m.printf("%s  %-22s %-6s %-40s %s (%dms)\n",
			inv.CreatedAt.Format(time.DateTime), inv.Command, inv.Method, inv.Path, status, inv.DurationMs)
	}
}

func (m *Menu) printMenu() {
	m.printf("%s\n", "---------------------------------")
	m.printf("%s\n", aurora.Bold("Select an option:"))
	m.printf("%s\n", "---------------------------------")
	registry := m.runner.Registry()
	for _, e := range m.entries {
		desc, _ := registry.Resolve(e.ID)
		m.printf("%s. %s\n", e.Key, m.title(e, desc))
	}
	m.printf("%s. %s\n", SnapshotKey, "Snapshot (balances + open orders)")
	if m.journal != nil {
		m.printf("%s. %s\n", JournalKey, "Recent calls")
	}
	m.printf("%s. %s\n", QuitKey, "Quit")
}

func (m *Menu) title(e Entry, desc command.Descriptor) string {
	return lo.CoalesceOrEmpty(e.Title, desc.Title, e.ID.ToString())
}

func (m *Menu) render(res exchange.Result) {
	if err := Render(m.out, res, m.format); err != nil {
		slog.Error("render result failed", "error", err)
	}
}

func (m *Menu) readLine(prompt string) (string, error) {
	m.printf("%s", prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}
