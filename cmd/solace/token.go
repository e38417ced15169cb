package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/solace/internal/auth"
	"github.com/hyperengineering/solace/internal/config"
)

var (
	tokenOwner string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an owner",
	Long:  "Sign a bearer token with the configured secret. Intended for local testing and operations.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOwner, "owner", "", "Owner id to place in the token subject (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenOwner == "" {
		return errors.New("--owner is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, err := auth.GenerateToken(tokenOwner, cfg.SigningKey(), tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
