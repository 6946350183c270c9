package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chronicle/internal/bootstrap"
	characterdto "chronicle/internal/modules/character/dto"
)

func newCharacterCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char"},
		Short:   "Manage the roster of the active campaign",
	}
	cmd.AddCommand(newCharacterListCmd(flags))
	cmd.AddCommand(newCharacterShowCmd(flags))
	cmd.AddCommand(newCharacterAddCmd(flags))
	cmd.AddCommand(newCharacterUpdateCmd(flags))
	cmd.AddCommand(newCharacterDeleteCmd(flags))
	cmd.AddCommand(newCharacterPortraitCmd(flags))
	cmd.AddCommand(newCharacterStoryboardCmd(flags))
	return cmd
}

func bindCharacterFlags(cmd *cobra.Command, in *characterdto.CharacterInput) {
	cmd.Flags().StringVar(&in.Race, "race", "", "race or ancestry")
	cmd.Flags().StringVar(&in.Class, "class", "", "class or role")
	cmd.Flags().StringVar(&in.Description, "description", "", "appearance and manner")
	cmd.Flags().StringVar(&in.BackgroundStory, "backstory", "", "background story")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free notes")
}

func newCharacterListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				characters, err := app.CharacterCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, c := range characters {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s %s\n", c.ID, c.Name, c.Race, c.Class)
				}
				return nil
			})
		},
	}
}

func newCharacterShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a character sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				c, err := app.CharacterCLI.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printCharacter(cmd.OutOrStdout(), c)
				return nil
			})
		},
	}
}

func newCharacterAddCmd(flags *rootFlags) *cobra.Command {
	input := characterdto.CharacterInput{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a character to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Name = args[0]
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				c, err := app.CharacterCLI.Add(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", c.Name, c.ID)
				return nil
			})
		},
	}
	bindCharacterFlags(cmd, &input)
	return cmd
}

func newCharacterUpdateCmd(flags *rootFlags) *cobra.Command {
	input := characterdto.CharacterInput{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change character fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.ID = args[0]
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CharacterCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				if !out.Updated {
					return fmt.Errorf("character %s not found", args[0])
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.Character.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input.Name, "name", "", "character name")
	bindCharacterFlags(cmd, &input)
	return cmd
}

func newCharacterDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a character from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				deleted, err := app.CharacterCLI.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("character %s not found", args[0])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
				return nil
			})
		},
	}
}

func newCharacterPortraitCmd(flags *rootFlags) *cobra.Command {
	var instructions string
	cmd := &cobra.Command{
		Use:   "portrait <id>",
		Short: "Draw a character portrait",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CharacterCLI.Portrait(ctx, args[0], instructions)
				if err != nil {
					return err
				}
				printImage(cmd.OutOrStdout(), "portrait", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&instructions, "instructions", "", "extra drawing instructions")
	return cmd
}

func newCharacterStoryboardCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "storyboard <id>",
		Short: "Draw a storyboard of a character's backstory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CharacterCLI.Storyboard(ctx, args[0])
				if err != nil {
					return err
				}
				printImage(cmd.OutOrStdout(), "storyboard", out)
				return nil
			})
		},
	}
}

func printCharacter(w io.Writer, c characterdto.CharacterOutput) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", c.Name, c.ID)
	for _, row := range [][2]string{
		{"race", c.Race},
		{"class", c.Class},
		{"description", c.Description},
		{"backstory", c.BackgroundStory},
		{"notes", c.Notes},
	} {
		if row[1] != "" {
			_, _ = fmt.Fprintf(w, "%-12s %s\n", row[0]+":", row[1])
		}
	}
}

func printImage(w io.Writer, kind string, out characterdto.ImageOutput) {
	switch {
	case out.Saved:
		_, _ = fmt.Fprintf(w, "%s stored for %s\n", kind, out.Character.Name)
	case out.Reason != "":
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", kind, out.Status, out.Reason)
	default:
		_, _ = fmt.Fprintf(w, "%s %s\n", kind, out.Status)
	}
}
