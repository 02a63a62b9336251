package ioc

import (
	"github.com/KNICEX/btcmarkets-cli/internal/command"
	"github.com/KNICEX/btcmarkets-cli/internal/repo"
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
	"gorm.io/gorm"
)

// InitExecutor builds the static registry and the executor on top of cli.
// The journal is wired only when db is non-nil.
func InitExecutor(cli exchange.Client, db *gorm.DB) (*command.Executor, repo.InvocationRepo, error) {
	registry, err := command.NewDefaultRegistry()
	if err != nil {
		return nil, nil, err
	}

	if db == nil {
		return command.NewExecutor(registry, cli), nil, nil
	}
	journal := repo.NewInvocationRepo(db)
	return command.NewExecutor(registry, cli, command.WithJournal(journal)), journal, nil
}
