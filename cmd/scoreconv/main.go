// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scoreconv CLI: batch conversion
// of notation documents into export formats, driven by a declarative JSON
// job file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the scoreconv CLI.
var rootCmd = &cobra.Command{
	Use:   "scoreconv",
	Short: "Batch notation document converter",
	Long: `scoreconv converts notation documents into export formats (pdf, png,
svg, mp3, txt, json) in batches. A JSON job file declares the inputs,
outputs, and optional per-job transpositions; scoreconv runs the jobs in
order, keeps going past individual failures, and reports an aggregate
result.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scoreconv.yaml or ~/.config/scoreconv/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (default info)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scoreconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scoreconv"))
		}
	}

	viper.SetEnvPrefix("SCORECONV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from the --log-level flag with the
// config file as fallback.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	name, _ := cmd.Flags().GetString("log-level")
	if name == "" {
		name = viper.GetString("log_level")
	}
	if name != "" {
		if l, err := zerolog.ParseLevel(name); err == nil {
			level = l
		}
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
