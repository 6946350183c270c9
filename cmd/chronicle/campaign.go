package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chronicle/internal/bootstrap"
	campaigndto "chronicle/internal/modules/campaign/dto"
)

func newCampaignCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}
	cmd.AddCommand(newCampaignListCmd(flags))
	cmd.AddCommand(newCampaignCreateCmd(flags))
	cmd.AddCommand(newCampaignUpdateCmd(flags))
	cmd.AddCommand(newCampaignDeleteCmd(flags))
	cmd.AddCommand(newCampaignSwitchCmd(flags))
	return cmd
}

func newCampaignListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				campaigns, err := app.CampaignCLI.List(ctx)
				if err != nil {
					return err
				}
				for _, c := range campaigns {
					marker := " "
					if c.Active {
						marker = "*"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\t%s\n", marker, c.ID, c.CreatedAt.Format("2006-01-02"), c.Name)
				}
				return nil
			})
		},
	}
}

func newCampaignCreateCmd(flags *rootFlags) *cobra.Command {
	var description, style, instructions string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				c, err := app.CampaignCLI.Create(ctx, args[0], description, style, instructions)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", c.Name, c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "campaign description")
	cmd.Flags().StringVar(&style, "style", "", "image style for generated art")
	cmd.Flags().StringVar(&instructions, "instructions", "", "extra instructions for the narrator")
	return cmd
}

func newCampaignUpdateCmd(flags *rootFlags) *cobra.Command {
	var name, description, style, instructions string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change campaign fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := campaigndto.UpdateInput{ID: args[0]}
			set := func(flag string, value *string) *string {
				if cmd.Flags().Changed(flag) {
					return value
				}
				return nil
			}
			input.Name = set("name", &name)
			input.Description = set("description", &description)
			input.ImageStyle = set("style", &style)
			input.AIInstructions = set("instructions", &instructions)

			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CampaignCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				if !out.Updated {
					return fmt.Errorf("campaign %s not found", args[0])
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", out.Campaign.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "campaign name")
	cmd.Flags().StringVar(&description, "description", "", "campaign description")
	cmd.Flags().StringVar(&style, "style", "", "image style for generated art")
	cmd.Flags().StringVar(&instructions, "instructions", "", "extra instructions for the narrator")
	return cmd
}

func newCampaignDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a campaign and its sessions and characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CampaignCLI.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !out.Deleted {
					return fmt.Errorf("campaign %s not found", args[0])
				}
				if out.Replacement != nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted; started %s\n", out.Replacement.Name)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted; active campaign is %s\n", out.ActiveCampaignID)
				return nil
			})
		},
	}
}

func newCampaignSwitchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id>",
		Short: "Make a campaign active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				ws, err := app.CampaignCLI.Switch(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active campaign: %s\n", ws.ActiveCampaignID)
				return nil
			})
		},
	}
}
