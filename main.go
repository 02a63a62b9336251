package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/KNICEX/btcmarkets-cli/internal/command"
	"github.com/KNICEX/btcmarkets-cli/internal/menu"
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange/btcmarkets"
	"github.com/KNICEX/btcmarkets-cli/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flags struct {
	run    string
	params map[string]string
	list   bool
}

func initViper() flags {
	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	run := pflag.String("run", "", "run a single command by id and exit")
	params := pflag.StringToString("param", nil, "command parameter as key=value, repeatable")
	output := pflag.String("output", "", "output format: json or yaml")
	list := pflag.Bool("list", false, "list command ids and exit")
	pflag.Parse()

	viper.SetDefault("cex.btcmarkets.api_key", "")
	viper.SetDefault("cex.btcmarkets.api_secret", "")
	viper.SetDefault("cex.btcmarkets.base_url", btcmarkets.BaseURL)
	viper.SetDefault("cex.btcmarkets.sign_query", false)
	viper.SetDefault("http.timeout", btcmarkets.DefaultTimeout)
	viper.SetDefault("journal.enabled", false)
	viper.SetDefault("journal.dsn", "./btcmarkets.db")
	viper.SetDefault("output.format", "json")
	viper.SetDefault("log.level", "info")

	ioc.InitEnv()

	viper.SetConfigFile(*file)
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if *output != "" {
		viper.Set("output.format", *output)
	}

	return flags{run: *run, params: *params, list: *list}
}

func initLogger() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	os.Exit(run())
}

func run() int {
	f := initViper()
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	format, err := menu.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		slog.Error("invalid output format", "error", err)
		return 1
	}

	if f.list {
		registry, err := command.NewDefaultRegistry()
		if err != nil {
			slog.Error("build registry failed", "error", err)
			return 1
		}
		for _, d := range registry.Descriptors() {
			fmt.Printf("%-22s %-6s %-40s %s\n", d.ID, d.Method, d.Path, d.Title)
		}
		return 0
	}

	creds, err := ioc.InitCredentials()
	if err != nil {
		slog.Error("load credentials failed", "error", err)
		return 1
	}
	slog.Info("credentials loaded", "credentials", creds)
	cli := ioc.InitBTCMarketsCli(creds)

	db, err := ioc.InitDB()
	if err != nil {
		slog.Error("open journal failed", "error", err)
		return 1
	}
	executor, journal, err := ioc.InitExecutor(cli, db)
	if err != nil {
		slog.Error("build registry failed", "error", err)
		return 1
	}

	if f.run != "" {
		start := time.Now()
		res := executor.Execute(ctx, command.ID(f.run), command.Params(f.params))
		slog.Debug("command finished", "command", f.run, "ok", res.OK(), "elapsed", time.Since(start))
		if err := menu.Render(os.Stdout, res, format); err != nil {
			slog.Error("render result failed", "error", err)
			return 1
		}
		if !res.OK() {
			return 1
		}
		return 0
	}

	opts := []menu.Option{menu.WithFormat(format)}
	if journal != nil {
		opts = append(opts, menu.WithJournal(journal))
	}
	if err := menu.New(executor, os.Stdin, os.Stdout, opts...).Run(ctx); err != nil {
		slog.Error("menu stopped", "error", err)
		return 1
	}
	return 0
}
