package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/thep200/github-sourcer/api"
	"github.com/thep200/github-sourcer/internal/preset"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/internal/velocity"
)

func main() {
	root := &cobra.Command{
		Use:   "sourcer",
		Short: "Scan GitHub for high-velocity repositories by thesis topic",
	}

	root.AddCommand(scanCmd(), presetsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func scanCmd() *cobra.Command {
	var (
		presetLabel string
		topic       string
		minStars    int
		days        int
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one sourcing pass and print the leads table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sourcingApi := api.NewSourcingAPI()
			if err := sourcingApi.Initialize(ctx); err != nil {
				return err
			}

			report, err := sourcingApi.Results(ctx, sourcing.Request{
				Preset:       presetLabel,
				Topic:        topic,
				MinStars:     minStars,
				LookbackDays: days,
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			printReport(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetLabel, "preset", "", "Thesis preset label or topic (see 'sourcer presets')")
	cmd.Flags().StringVar(&topic, "topic", "", "Free-text topic, used when no preset is given")
	cmd.Flags().IntVar(&minStars, "min-stars", 0, "Minimum star count filter")
	cmd.Flags().IntVar(&days, "days", 0, "Lookback window in days, 1-30 (0 = configured default)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max repositories to scan (0 = configured default)")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the thesis presets",
		Run: func(cmd *cobra.Command, args []string) {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Label", "Topic"})
			table.SetBorder(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, p := range preset.List() {
				table.Append([]string{p.Label, p.Topic})
			}
			table.Render()
		},
	}
}

func printReport(report *sourcing.Report) {
	fmt.Printf("Topic: %s | Lookback: %d days\n\n", report.Topic, report.LookbackDays)

	// Market pulse
	fmt.Printf("Candidates scanned: %d\n", report.Summary.Scanned)
	fmt.Printf("Breakout signals:   %d\n", report.Summary.BreakoutSignals)
	fmt.Printf("Avg velocity:       %.1f\n", report.Summary.AvgVelocity)
	fmt.Printf("Top mover:          %s\n\n", report.Summary.TopMover)

	if len(report.Records) == 0 {
		fmt.Println("No repositories found. Try a different topic.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Signal", "Name", "Owner", "Velocity", "Est/wk", "Stars", "Language", "URL"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, rec := range report.Records {
		table.Append([]string{
			tierLabel(rec.Tier),
			rec.Name,
			rec.Owner,
			strconv.Itoa(rec.Velocity),
			fmt.Sprintf("%.1f", rec.EstVelocity),
			strconv.FormatInt(rec.Stars, 10),
			rec.Language,
			rec.Url,
		})
	}
	table.Render()
}

func tierLabel(t velocity.Tier) string {
	switch t {
	case velocity.TierBreakout, velocity.TierBreakoutHuge:
		return color.RedString(string(t))
	case velocity.TierGrowing:
		return color.BlueString(string(t))
	default:
		return color.GreenString(string(t))
	}
}
