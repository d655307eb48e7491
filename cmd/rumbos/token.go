package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nurpe/rumbos-envios/internal/auth"
	"github.com/nurpe/rumbos-envios/internal/model"
)

var tokenFlags struct {
	role     string
	userID   string
	driverID string
	ttl      time.Duration
}

// tokenCmd signs an access token with the configured secret, for local
// development against the API.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		principal := model.Principal{UserID: uuid.New(), Role: model.UserRole(strings.ToUpper(tokenFlags.role))}
		if tokenFlags.userID != "" {
			if principal.UserID, err = uuid.Parse(tokenFlags.userID); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
		}
		if tokenFlags.driverID != "" {
			driverID, err := uuid.Parse(tokenFlags.driverID)
			if err != nil {
				return fmt.Errorf("invalid --driver: %w", err)
			}
			principal.DriverID = &driverID
		}

		token, err := auth.NewParser(cfg.Auth.AccessSecret).Sign(principal, jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenFlags.ttl)),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", string(model.UserRoleAdmin), "ADMIN, OPERADOR or REPARTIDOR")
	tokenCmd.Flags().StringVar(&tokenFlags.userID, "user", "", "user id (random when empty)")
	tokenCmd.Flags().StringVar(&tokenFlags.driverID, "driver", "", "driver id for REPARTIDOR tokens")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 12*time.Hour, "token lifetime")
}
