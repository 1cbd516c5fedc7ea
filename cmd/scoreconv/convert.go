// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scoreconv/internal/batch"
	"github.com/pdiddy/scoreconv/internal/convert"
	"github.com/pdiddy/scoreconv/internal/history"
	"github.com/pdiddy/scoreconv/internal/notation"
	"github.com/pdiddy/scoreconv/internal/render"
	"github.com/pdiddy/scoreconv/internal/score"
	"github.com/pdiddy/scoreconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <job-file.json>",
	Short: "Run a batch of conversion jobs from a JSON job file",
	Long: `Convert reads a JSON array of jobs, each with an input path, one or
more outputs, and an optional transposition, and runs them in order. A
failing job does not stop the batch; the final result lists every failure.

Templated outputs ([prefix, suffix] pairs, or paths with * in the base
name) expand to one artifact per part of the input document.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("style", "", "style overlay applied when loading inputs")
	convertCmd.Flags().Bool("force", false, "bypass document version checks on load")
	convertCmd.Flags().String("sound-profile", "", "override the active sound profile")
	convertCmd.Flags().String("extension", "", "extension URI run against each document before export")
	convertCmd.Flags().String("audio-encoder", "", "external audio encoder binary for mp3 output")
	convertCmd.Flags().String("history-dir", "", "directory for the run-history database (default history)")
	convertCmd.Flags().Bool("no-history", false, "skip recording this run in history")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	ctx := logger.WithContext(context.Background())

	cfg := convertConfig(cmd)
	jobFile := args[0]

	registry := render.NewDefaultRegistry()
	if encoder, _ := cmd.Flags().GetString("audio-encoder"); encoder != "" {
		registry.Register("mp3", &render.AudioWriter{Encoder: encoder})
	}

	conv := convert.New(score.NewLoader(), registry, builtinExtensions(), score.NativeSuffixes()...)
	runner := batch.NewRunner(conv)

	started := time.Now()
	result, err := runner.RunFile(ctx, jobFile, cfg, newConsoleProgress(os.Stderr))
	finished := time.Now()

	if shouldRecord(err) {
		recordRun(cmd, logger, jobFile, result, started, finished)
	}

	return err
}

// shouldRecord reports whether a run got past job-file parsing. A batch
// that never produced jobs leaves no history row.
func shouldRecord(err error) bool {
	return !errors.Is(err, convert.ErrBatchJobFileOpen) &&
		!errors.Is(err, convert.ErrBatchJobFileParse)
}

// builtinExtensions registers the extensions shipped with the CLI.
// "scoreconv://transpose?semitones=N" shifts the document before export.
func builtinExtensions() *notation.ExtensionRegistry {
	reg := notation.NewExtensionRegistry()
	reg.Register("scoreconv://transpose", func(ctx context.Context, doc notation.Document, params url.Values) error {
		n, err := strconv.Atoi(params.Get("semitones"))
		if err != nil {
			return fmt.Errorf("transpose extension: bad semitones %q", params.Get("semitones"))
		}
		opts := types.TransposeOptions{
			Mode:      types.TransposeByInterval,
			Direction: types.TransposeUp,
			Interval:  n,
		}
		if n < 0 {
			opts.Direction = types.TransposeDown
			opts.Interval = -n
		}
		return doc.Transpose(opts)
	})
	return reg
}

// convertConfig merges flags over config-file values.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		StylePath:    viper.GetString("convert.style_path"),
		SoundProfile: viper.GetString("convert.sound_profile"),
		ExtensionURI: viper.GetString("convert.extension_uri"),
		ForceMode:    viper.GetBool("convert.force_mode"),
	}

	if v, _ := cmd.Flags().GetString("style"); v != "" {
		cfg.StylePath = v
	}
	if v, _ := cmd.Flags().GetString("sound-profile"); v != "" {
		cfg.SoundProfile = v
	}
	if v, _ := cmd.Flags().GetString("extension"); v != "" {
		cfg.ExtensionURI = v
	}
	if v, _ := cmd.Flags().GetBool("force"); v {
		cfg.ForceMode = true
	}
	return cfg
}

// recordRun stores the batch outcome in the history database. History
// failures are logged and never fail the conversion.
func recordRun(cmd *cobra.Command, logger zerolog.Logger, jobFile string, result types.BatchResult, started, finished time.Time) {
	if skip, _ := cmd.Flags().GetBool("no-history"); skip {
		return
	}
	hcfg := historyConfig(cmd)
	if hcfg.Disabled {
		return
	}

	store, err := history.NewStore(hcfg)
	if err != nil {
		logger.Warn().Err(err).Msg("history store unavailable")
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(context.Background(), jobFile, result.Total, result, started, finished); err != nil {
		logger.Warn().Err(err).Msg("failed to record run history")
	}
}

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	cfg := types.HistoryConfig{
		Dir:      viper.GetString("history.dir"),
		Disabled: viper.GetBool("history.disabled"),
	}
	if v, _ := cmd.Flags().GetString("history-dir"); v != "" {
		cfg.Dir = v
	}
	if cfg.Dir == "" {
		cfg.Dir = "history"
	}
	return cfg
}
