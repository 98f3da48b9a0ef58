package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/themobileprof/portfolio-concierge/internal/db"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"golang.org/x/crypto/bcrypt"
)

func HashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash an admin password",
		Long: `Print a bcrypt hash for CONCIERGE_ADMIN_PASSWORD_HASH.

The password is read from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHashPassword,
	}
	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	cost, _ := cmd.Flags().GetInt("cost")
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("no password given")
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(hash))
	return nil
}

func PushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Store a knowledge file in Postgres",
		Long: `Validate a knowledge file and insert it as the newest row of knowledge_records.

Servers running with CONCIERGE_KNOWLEDGE_SOURCE=postgres pick it up on the next reload.`,
		Args: cobra.ExactArgs(1),
		RunE: runPush,
	}
	cmd.Flags().String("database-url", "", "Postgres URL (default $CONCIERGE_DATABASE_URL)")
	cmd.Flags().StringP("note", "m", "", "Note stored with the record")
	cmd.Flags().Bool("migrate", true, "Create tables when missing")
	return cmd
}

func runPush(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("database-url")
	note, _ := cmd.Flags().GetString("note")
	migrate, _ := cmd.Flags().GetBool("migrate")
	if url == "" {
		url = os.Getenv("CONCIERGE_DATABASE_URL")
	}
	if url == "" {
		return errors.New("database url is required (--database-url or CONCIERGE_DATABASE_URL)")
	}

	rec, err := knowledge.LoadFile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, db.Config{URL: url, MaxConnections: 2})
	if err != nil {
		return err
	}
	defer database.Close()

	return pushRecord(ctx, cmd, database, rec, note, migrate)
}

func pushRecord(ctx context.Context, cmd *cobra.Command, database *db.DB, rec *knowledge.Record, note string, migrate bool) error {
	if migrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	}

	id, err := db.NewKnowledgeRepository(database, nil).Save(ctx, rec, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored record %d (version %q, fingerprint %s)\n", id, rec.Version, knowledge.Fingerprint(rec))
	return nil
}
