// Package tui is the interactive feed browser started by "client browse".
package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vidshare/internal/adapter"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultPageSize = 20

type TUI struct {
	api      adapter.ServerAdapter
	baseURL  string
	pageSize uint64
	logger   *logger.Logger
}

// New returns a browser over api. baseURL turns the relative media paths of
// posts into links that can be opened outside the terminal.
func New(api adapter.ServerAdapter, baseURL string, pageSize uint64, log *logger.Logger) *TUI {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	return &TUI{api: api, baseURL: baseURL, pageSize: pageSize, logger: log}
}

// Browse blocks until the user quits or ctx is cancelled.
func (t *TUI) Browse(ctx context.Context) error {
	model := newBrowserModel(ctx, t.api, t.baseURL, t.pageSize)
	model.clip = clipboard.WriteAll

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run browser: %w", err)
	}

	if result, ok := final.(browserModel); ok && result.err != nil {
		t.logger.Debug().Err(result.err).Msg("browser closed with an error on screen")
	}
	return nil
}
