package command

import (
	"fmt"
	"time"

	"restaurantscorer/cmd/cli/command/client"
	"restaurantscorer/cmd/cli/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var submitReq dto.SubmitRequest

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Record a restaurant visit",
	Long: `Record a restaurant visit. The server computes the final score as
(taste + experience + value) / mood.`,
	Example: `  scorer submit --name "Pho Place" --link https://maps.example/pho \
    --date 2024-03-01 --taste 8 --experience 7 --value 9 --mood 0.9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if submitReq.DateVisited == "" {
			submitReq.DateVisited = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", submitReq.DateVisited); err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", submitReq.DateVisited)
		}

		httpClient := client.NewHTTPClient(apiURL)
		message, err := httpClient.Submit(&submitReq)
		if err != nil {
			return fmt.Errorf("failed to submit entry: %w", err)
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), message)
		return nil
	},
}

func init() {
	f := submitCmd.Flags()
	f.StringVar(&submitReq.RestaurantName, "name", "", "restaurant name")
	f.StringVar(&submitReq.Link, "link", "", "map or website link")
	f.StringVar(&submitReq.DateVisited, "date", "", "visit date YYYY-MM-DD (default today)")
	f.Float64Var(&submitReq.Mood, "mood", 1.0, "mood multiplier, usually 0.9 to 1.1")
	f.IntVar(&submitReq.Taste, "taste", 0, "taste rating 0-10")
	f.IntVar(&submitReq.Experience, "experience", 0, "experience rating 0-10")
	f.IntVar(&submitReq.Value, "value", 0, "value rating 0-10")
	f.StringVar(&submitReq.Notes, "notes", "", "optional notes")

	for _, name := range []string{"name", "link", "taste", "experience", "value"} {
		submitCmd.MarkFlagRequired(name)
	}
}
