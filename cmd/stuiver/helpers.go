package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/svanhoutte/stuiver/internal/config"
	"github.com/svanhoutte/stuiver/internal/ledger"
	"github.com/svanhoutte/stuiver/internal/model"
	"github.com/svanhoutte/stuiver/internal/money"
	"github.com/svanhoutte/stuiver/internal/storage"
)

// openStore opens the ledger database and loads (migrating if needed)
// the current state. The returned closer must be deferred.
func openStore(ctx context.Context) (*ledger.Store, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	store, err := ledger.Open(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return store, func() { _ = kv.Close() }, nil
}

// moneyFormatter builds the display formatter from configuration,
// defaulting to the nl-BE euro convention.
func moneyFormatter() *money.Formatter {
	tagName := viper.GetString("locale.tag")
	if tagName == "" {
		tagName = "nl-BE"
	}
	code := viper.GetString("locale.currency")
	if code == "" {
		code = "EUR"
	}

	tag, err := language.Parse(tagName)
	if err != nil {
		tag = language.MustParse("nl-BE")
	}
	return money.NewFormatter(tag, code)
}

// scopeLabel names the active month filter for display.
func scopeLabel(state *model.LedgerState) string {
	if state.SelectedMonth == model.ScopeAll {
		return "all time"
	}
	return state.SelectedMonth
}
