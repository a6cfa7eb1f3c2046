package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/selesai/internal/commands"
	"github.com/sandeepkv93/selesai/internal/filter"
	"github.com/sandeepkv93/selesai/internal/model"
	"github.com/sandeepkv93/selesai/internal/views"
	"github.com/spf13/cobra"
)

func newAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a note to the end of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line := commands.Command{
				Type: commands.TypeAdd,
				Add:  &commands.AddArgs{Description: strings.Join(args, " ")},
			}
			return s.execute(cmd.Context(), cmd.OutOrStdout(), line)
		},
	}
}

func newToggleCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"check", "done"},
		Short:   "Check or uncheck a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, "toggle "+args[0])
		},
	}
}

func newRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "del"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, "remove "+args[0])
		},
	}
}

func newListCmd(s *session) *cobra.Command {
	var completed, markdown bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print pending (or completed) notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := model.FilterPending
			if completed {
				mode = model.FilterCompleted
			}
			visible := filter.Visible(s.store.Items(), mode)
			checklist := make([]views.ChecklistItem, 0, len(visible))
			for _, item := range visible {
				checklist = append(checklist, views.ChecklistItem{ID: item.ID, Description: item.Description, Checked: item.Checked})
			}

			out := cmd.OutOrStdout()
			if markdown {
				title := strings.ToUpper(mode.String()[:1]) + mode.String()[1:]
				_, err := fmt.Fprintln(out, views.RenderMarkdown(views.MarkdownChecklist(title, checklist)))
				return err
			}
			_, err := io.WriteString(out, views.PlainChecklist(checklist))
			return err
		},
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "show checked notes instead of pending ones")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as a markdown checklist")
	return cmd
}

func newResetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.gateway.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			s.logger.Info().Str("state", s.cfg.StatePath).Msg("list reset")
			return nil
		},
	}
}

func (s *session) run(cmd *cobra.Command, line string) error {
	parsed, err := commands.Parse(line)
	if err != nil {
		return err
	}
	return s.execute(cmd.Context(), cmd.OutOrStdout(), parsed)
}

// execute applies one command. Unknown ids and blank text print nothing and
// succeed.
func (s *session) execute(ctx context.Context, out io.Writer, cmd commands.Command) error {
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			item, ok := s.store.Create(ctx, a.Description)
			if !ok {
				return commands.Result{}, nil
			}
			return commands.Result{Message: fmt.Sprintf("added #%d: %s", item.ID, item.Description)}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			res, ok := s.store.Toggle(ctx, a.ID)
			if !ok {
				return commands.Result{}, nil
			}
			verb := "unchecked"
			if res.Item.Checked {
				verb = "checked"
			}
			msg := fmt.Sprintf("%s #%d: %s", verb, res.Item.ID, res.Item.Description)
			if res.Celebration != nil {
				msg += "\nall done!"
			}
			return commands.Result{Message: msg}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			item, ok := s.store.Get(a.ID)
			if !ok || !s.store.Remove(ctx, a.ID) {
				return commands.Result{}, nil
			}
			return commands.Result{Message: fmt.Sprintf("removed #%d: %s", item.ID, item.Description)}, nil
		},
	})
	if err != nil {
		return err
	}
	if err := s.store.LastSaveErr(); err != nil {
		return fmt.Errorf("save list: %w", err)
	}
	if res.Message != "" {
		_, err = fmt.Fprintln(out, res.Message)
	}
	return err
}
