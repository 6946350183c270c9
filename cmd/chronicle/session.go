package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chronicle/internal/bootstrap"
	sessiondto "chronicle/internal/modules/session/dto"
)

func newSessionCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the session timeline of the active campaign",
	}
	cmd.AddCommand(newSessionListCmd(flags))
	cmd.AddCommand(newSessionShowCmd(flags))
	cmd.AddCommand(newSessionCastCmd(flags))
	cmd.AddCommand(newSessionAddCmd(flags))
	cmd.AddCommand(newSessionChronicleCmd(flags))
	cmd.AddCommand(newSessionRegenerateCmd(flags))
	cmd.AddCommand(newSessionUpdateCmd(flags))
	cmd.AddCommand(newSessionDeleteCmd(flags))
	cmd.AddCommand(newSessionTranslateCmd(flags))
	return cmd
}

type sessionFields struct {
	date      string
	title     string
	notes     string
	notesFile string
	cast      []string
}

func (f *sessionFields) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "session date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.title, "title", "", "session title")
	cmd.Flags().StringVar(&f.notes, "notes", "", "raw session notes")
	cmd.Flags().StringVar(&f.notesFile, "notes-file", "", "read raw notes from a file (- for stdin)")
	cmd.Flags().StringSliceVar(&f.cast, "cast", nil, "names of the characters involved")
}

func (f *sessionFields) rawNotes(cmd *cobra.Command) (string, error) {
	switch f.notesFile {
	case "":
		return f.notes, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read notes: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(f.notesFile)
		if err != nil {
			return "", fmt.Errorf("read notes: %w", err)
		}
		return string(data), nil
	}
}

func newSessionListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.ID, s.Date, s.Title)
				}
				return nil
			})
		},
	}
}

func newSessionShowCmd(flags *rootFlags) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a session story",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				v, err := app.SessionCLI.Show(ctx, args[0], mode)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s  %s\n", v.Session.Date, v.Session.Title)
				if v.Translated {
					_, _ = fmt.Fprintf(out, "[%s]\n", v.Language)
				}
				_, _ = fmt.Fprintf(out, "\n%s\n", v.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "original or translated (default follows the language)")
	return cmd
}

func newSessionCastCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cast <id>",
		Short: "Match a session's cast against the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				cast, err := app.SessionCLI.Cast(ctx, args[0])
				if err != nil {
					return err
				}
				for _, c := range cast.Known {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
				}
				for _, name := range cast.Unknown {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "-\t%s (not on the roster)\n", name)
				}
				return nil
			})
		},
	}
}

func newSessionAddCmd(flags *rootFlags) *cobra.Command {
	fields := &sessionFields{}
	var story string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a session without generating a story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := fields.rawNotes(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.SessionCLI.Add(ctx, sessiondto.SessionInput{
					Date:               fields.date,
					Title:              fields.title,
					RawNotes:           notes,
					Story:              story,
					CharactersInvolved: fields.cast,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", s.Title, s.ID)
				return nil
			})
		},
	}
	fields.bind(cmd)
	cmd.Flags().StringVar(&story, "story", "", "story text")
	return cmd
}

func newSessionChronicleCmd(flags *rootFlags) *cobra.Command {
	fields := &sessionFields{}
	var withImage bool
	cmd := &cobra.Command{
		Use:   "chronicle",
		Short: "Write a session story from raw notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := fields.rawNotes(cmd)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Chronicle(ctx, sessiondto.ChronicleInput{
					Date:               fields.date,
					Title:              fields.title,
					RawNotes:           notes,
					CharactersInvolved: fields.cast,
					WithImage:          withImage,
				})
				if err != nil {
					return err
				}
				printChronicle(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	fields.bind(cmd)
	cmd.Flags().BoolVar(&withImage, "image", false, "also draw a scene image")
	return cmd
}

func newSessionRegenerateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <id>",
		Short: "Write the story again from the stored notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Regenerate(ctx, args[0])
				if err != nil {
					return err
				}
				printChronicle(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

func newSessionUpdateCmd(flags *rootFlags) *cobra.Command {
	fields := &sessionFields{}
	var story string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change session fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := fields.rawNotes(cmd)
			if err != nil {
				return err
			}
			var cast []string
			if cmd.Flags().Changed("cast") {
				cast = append([]string{}, fields.cast...)
			}
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Update(ctx, sessiondto.SessionInput{
					ID:                 args[0],
					Date:               fields.date,
					Title:              fields.title,
					RawNotes:           notes,
					Story:              story,
					CharactersInvolved: cast,
				})
				if err != nil {
					return err
				}
				if !out.Updated {
					return fmt.Errorf("session %s not found", args[0])
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.Session.Title)
				return nil
			})
		},
	}
	fields.bind(cmd)
	cmd.Flags().StringVar(&story, "story", "", "story text (clears stored translations)")
	return cmd
}

func newSessionDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				deleted, err := app.SessionCLI.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("session %s not found", args[0])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			})
		},
	}
}

func newSessionTranslateCmd(flags *rootFlags) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "translate <id>",
		Short: "Translate a session story and cache the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Translate(ctx, args[0], lang)
				if err != nil {
					return err
				}
				status := out.Status
				if out.Reason != "" {
					status += ": " + out.Reason
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n\n%s\n", status, out.Text)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "target language (default: workspace language)")
	return cmd
}

func printChronicle(w io.Writer, out sessiondto.ChronicleOutput) {
	if !out.Saved {
		_, _ = fmt.Fprintln(w, "not saved: the campaign was deleted while the story was being written")
		return
	}
	statuses := []string{"story " + out.StoryStatus}
	if out.ImageStatus != "" {
		statuses = append(statuses, "image "+out.ImageStatus)
	}
	_, _ = fmt.Fprintf(w, "%s (%s)\n", out.Session.Title, out.Session.ID)
	_, _ = fmt.Fprintf(w, "[%s]\n", strings.Join(statuses, ", "))
	if out.Reason != "" {
		_, _ = fmt.Fprintf(w, "reason: %s\n", out.Reason)
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", out.Session.Story)
}
