package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"punchsheet/storage"
)

var (
	deleteDBPath string
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the SQLite rates database file",
	Long: `Destructive database cleanup command.

This command deletes the complete SQLite rates database written by "rates import".
The file must hold a rates table; other files are left alone. Before deletion, an
interactive security prompt shows how many rates will be dropped and requires typing exactly "Y".`,
	Example: `
  # Delete the rates database (requires interactive confirmation)
  punchsheet delete --db ./punchsheet-rates.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := inspectRatesDatabase(deleteDBPath)
		if err != nil {
			return err
		}

		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, deleteDBPath, count)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if err := os.Remove(deleteDBPath); err != nil {
			return fmt.Errorf("delete database file: %w", err)
		}
		fmt.Printf("Deleted rates database: %s (%d rates dropped)\n", deleteDBPath, count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "./punchsheet-rates.db", "Path to the SQLite rates database")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, path string, rateCount int) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete rates database %q with %d rates? Type Y to confirm: ", path, rateCount); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

// inspectRatesDatabase returns the number of stored rates, refusing paths
// that are missing, directories or not rates databases.
func inspectRatesDatabase(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("database file not found: %s", path)
		}
		return 0, fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("database path is a directory: %s", path)
	}
	return storage.InspectRates(path)
}
