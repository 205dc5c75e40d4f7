package cli

import (
	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a guest profile and save its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Profile

			body := map[string]string{"display_name": displayName}
			if err := client.Post("/api/v1/profiles/guest", body, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Token); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			out.PrintMessage("Token saved to " + cfg.TokenFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name for the profile")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
