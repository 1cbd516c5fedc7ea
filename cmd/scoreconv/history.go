// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scoreconv/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past batch runs and their failures",
	Long: `History lists batch runs recorded in the local history database,
newest first. Use --run to show the per-job failures of one run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the failures of one run id")
	historyCmd.Flags().String("history-dir", "", "directory of the run-history database (default history)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		errs, err := store.RunErrors(ctx, runID)
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			fmt.Fprintf(os.Stdout, "run %d: no failures recorded\n", runID)
			return nil
		}
		for _, e := range errs {
			fmt.Fprintf(os.Stdout, "in: %s  out: %s\n  %s\n", e.In, e.Out, e.Message)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "no runs recorded")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if !r.OK {
			status = fmt.Sprintf("%d failed", r.Failed)
		}
		fmt.Fprintf(os.Stdout, "%4d  %s  %-40s %3d jobs  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.JobFile, r.Total, status)
	}
	return nil
}
