package command

// root.go defines the root command for the scorer CLI and its global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scorer",
	Short: "scorer - Restaurant Scorer command line client",
	Long: `scorer talks to a running Restaurant Scorer server. Use it to:
- Record a restaurant visit and see its final score
- List recent visits or look one up by id
- Check that the server is up

The server URL comes from --api, then $SCORER_API_URL, then ` + defaultAPIURL + `.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI(), "API server URL")
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(healthCmd)
}

func defaultAPI() string {
	if v := os.Getenv("SCORER_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
