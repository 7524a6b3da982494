package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storeldb/storeapi/internal/core/service"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue an API token",
	Long:  "Issue a bearer token accepted by the mutating API routes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.AuthEnabled() {
			return fmt.Errorf("jwt_secret_key is not configured, the API does not require tokens")
		}

		authService := service.NewAuthService(cfg.JWTSecretKey, cfg.JWTAlgorithm)
		token, err := authService.IssueToken(args[0], tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", service.TokenExpirationHours*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}
