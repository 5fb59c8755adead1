package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MariamAbbas03/Project435/internal/database"
)

var applySchema bool

// schemaCmd prints or applies the table definitions
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or apply the database schema",
	Long: `Print the CREATE TABLE statements the services run on start.

With --apply the statements are executed against --db. Every statement is
IF NOT EXISTS, so applying twice is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !applySchema {
			fmt.Print(database.Schema())
			return nil
		}
		return runSchemaApply(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolVar(&applySchema, "apply", false, "Execute the schema against the database")
}

func runSchemaApply(ctx context.Context) error {
	pc := cfg.PoolConfig()
	pc.DSN = dbURL
	pc.ConnectAttempts = 1

	pool, err := database.NewPool(ctx, pc)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	fmt.Println("✅ Schema applied")
	return nil
}
