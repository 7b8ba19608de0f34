package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect or replace the OAuth token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set TOKEN",
	Short: "Replace the OAuth token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenSet,
}

var tokenCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the token and list its scopes",
	RunE:  runTokenCheck,
}

func init() {
	tokenSetCmd.Flags().BoolVar(&saveCreds, "save", false, "write the new token to the credentials file")

	tokenCmd.AddCommand(tokenSetCmd, tokenCheckCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	client.SetToken(strings.TrimPrefix(args[0], "oauth:"))
	logger.Info().Msg("OAuth token replaced")

	if saveCreds {
		return saveCredentials()
	}
	return nil
}

func runTokenCheck(cmd *cobra.Command, args []string) error {
	status, err := client.TestConnection(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Token valid for %s\n", status.UserName)
	if len(status.Authorization.Scopes) > 0 {
		fmt.Fprintf(out, "  Scopes: %s\n", strings.Join(status.Authorization.Scopes, ", "))
	}
	return nil
}

func saveCredentials() error {
	if cfg.Credentials.File == "" {
		return fmt.Errorf("no credentials file configured; pass --credentials or set credentials.file")
	}
	if err := client.SaveCredentials(cfg.Credentials.File); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Credentials.File).Msg("Credentials saved")
	return nil
}
