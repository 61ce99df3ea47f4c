// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the usecase-scout CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/usecase-scout/internal/config"
	"github.com/pdiddy/usecase-scout/internal/logging"
	"github.com/pdiddy/usecase-scout/internal/secrets"
	"github.com/pdiddy/usecase-scout/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// appConfig is resolved once per invocation in PersistentPreRunE.
	appConfig types.AppConfig

	logger     = zap.NewNop()
	logCleanup = func() {}
)

// rootCmd is the base command for the usecase-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "usecase-scout",
	Short: "Suggest AI use cases for an industry and find datasets for them",
	Long: `usecase-scout asks a language model for AI/ML use cases that fit an
industry and its current trends, then searches Hugging Face and Kaggle for
datasets related to each use case.

Sessions are saved locally so the dataset search can run later against the
use cases of an earlier generation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		if names := s.Names(); len(names) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", names)
		}

		bindCommandFlags(cmd)
		cfg, err := config.Load(viper.GetViper(), s)
		if err != nil {
			return err
		}
		appConfig = cfg

		l, cleanup, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger, logCleanup = l, cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCleanup()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./usecase-scout.yaml or ~/.config/usecase-scout/usecase-scout.yaml)")
	pf.String("data-dir", "", "base directory for the session store (contains index/)")
	pf.Bool("no-store", false, "do not read or save sessions")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	mustBind("store.data_dir", pf.Lookup("data-dir"))
	mustBind("store.disabled", pf.Lookup("no-store"))
	mustBind("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("usecase-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "usecase-scout"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logCleanup()
		os.Exit(1)
	}
}
