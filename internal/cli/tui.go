package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/selesai/internal/update"
	"github.com/sandeepkv93/selesai/internal/views"
	"github.com/sandeepkv93/selesai/internal/watch"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, s *session) error {
	theme := views.ApplyColorProfile()

	var watcher *watch.Engine
	if s.cfg.Watch {
		watcher = watch.NewEngine(s.cfg.StatePath, s.cfg.WatchBuffer, 75*time.Millisecond, s.logger)
		if err := watcher.Start(); err != nil {
			s.logger.Warn().Err(err).Str("path", s.cfg.StatePath).Msg("state watcher unavailable")
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	m := update.NewModelWithConfig(s.store, watcher, theme, s.cfg).WithLogger(s.logger)
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("selesai failed: %w", err)
	}
	if dropped := watcherDropped(watcher); dropped > 0 {
		s.logger.Debug().Uint64("dropped", dropped).Msg("coalesced state change events")
	}
	return nil
}

func watcherDropped(w *watch.Engine) uint64 {
	if w == nil {
		return 0
	}
	return w.Dropped()
}
