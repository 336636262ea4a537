package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mrwaste/wastecrm/internal/auth"
	"github.com/mrwaste/wastecrm/internal/config"
	"github.com/mrwaste/wastecrm/internal/model"
)

var (
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a staff access token signed with JWT_ACCESS_SECRET",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id (random when empty)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", model.RoleStaff, "role: STAFF or ADMIN")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	role := strings.ToUpper(strings.TrimSpace(tokenRole))
	if role != model.RoleStaff && role != model.RoleAdmin {
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	userID := uuid.New()
	if tokenUser != "" {
		userID, err = uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
	}

	now := time.Now()
	token, err := auth.NewParser(cfg.Auth.AccessSecret).Issue(userID, role, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
