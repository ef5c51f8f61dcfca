package command

import (
	"fmt"
	"io"
	"strconv"

	"restaurantscorer/cmd/cli/command/client"
	"restaurantscorer/cmd/cli/dto"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listLimit int

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Browse recorded visits",
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent visits, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)
		entries, err := httpClient.ListEntries(listLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			color.New(color.FgYellow).Fprintln(out, "No entries found.")
			return nil
		}

		renderEntries(out, entries)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one visit by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		httpClient := client.NewHTTPClient(apiURL)
		entry, err := httpClient.GetEntry(id)
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID: %d\n", entry.ID)
		fmt.Fprintf(out, "Restaurant: %s\n", entry.RestaurantName)
		fmt.Fprintf(out, "Link: %s\n", entry.Link)
		fmt.Fprintf(out, "Visited: %s\n", entry.DateVisited)
		fmt.Fprintf(out, "Taste: %d  Experience: %d  Value: %d  Mood: %.1f\n",
			entry.Taste, entry.Experience, entry.Value, entry.Mood)
		if entry.Notes != nil {
			fmt.Fprintf(out, "Notes: %s\n", *entry.Notes)
		}
		color.New(color.FgCyan, color.Bold).Fprintf(out, "Final score: %.2f\n", entry.FinalScore)
		return nil
	},
}

func renderEntries(w io.Writer, entries []dto.ScoreEntryResponse) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Restaurant", "Visited", "Taste", "Exp", "Value", "Mood", "Score"})

	for _, e := range entries {
		table.Append([]string{
			strconv.FormatInt(e.ID, 10),
			e.RestaurantName,
			e.DateVisited,
			strconv.Itoa(e.Taste),
			strconv.Itoa(e.Experience),
			strconv.Itoa(e.Value),
			fmt.Sprintf("%.1f", e.Mood),
			fmt.Sprintf("%.2f", e.FinalScore),
		})
	}
	table.Render()
}

func init() {
	listEntriesCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of entries (server default 100)")

	entriesCmd.AddCommand(listEntriesCmd)
	entriesCmd.AddCommand(getEntryCmd)
}
