package cli

import (
	"fmt"
	"strings"
	"time"

	"wellness-analytics/internal/config"
	"wellness-analytics/pkg/utils"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	Long: `Mint a bearer token signed with JWT_SECRET.

Examples:
  analyticsctl token --user u-1 --role ADMIN
  analyticsctl token --user m-7 --role MANAGER --ttl 1h`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

var (
	tokenUser  string
	tokenRoles []string
	tokenTTL   time.Duration
)

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenUser, "user", "dev-user", "User id placed in the token")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "role", []string{"ADMIN"}, "Role(s) placed in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default 72h)")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.IsProduction() {
		return fmt.Errorf("refusing to mint tokens with ENVIRONMENT=production")
	}
	utils.SetSecret(cfg.JWTSecret)

	roles := make([]string, 0, len(tokenRoles))
	for _, r := range tokenRoles {
		roles = append(roles, strings.ToUpper(strings.TrimSpace(r)))
	}

	token, err := utils.GenerateToken(tokenUser, roles, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
