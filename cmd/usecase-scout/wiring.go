// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/usecase-scout/internal/cache"
	"github.com/pdiddy/usecase-scout/internal/generate"
	"github.com/pdiddy/usecase-scout/internal/pipeline"
	"github.com/pdiddy/usecase-scout/internal/search"
	"github.com/pdiddy/usecase-scout/internal/store"
)

// mustBind binds a flag to a viper key. A missing flag is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

// commandFlagKeys maps flags that several commands define to their viper keys.
var commandFlagKeys = map[string]string{
	"backend":     "generation.backend",
	"model":       "generation.model",
	"max-results": "search.max_results",
	"addr":        "server.addr",
}

// bindCommandFlags binds the running command's shared flags to viper. Binding
// happens per invocation since viper keeps one flag per key.
func bindCommandFlags(cmd *cobra.Command) {
	for name, key := range commandFlagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			mustBind(key, f)
		}
	}
}

// openStore opens the session store, or returns nil when persistence is disabled.
func openStore() (*store.Store, error) {
	if appConfig.Store.Disabled {
		return nil, nil
	}
	return store.NewStore(appConfig.Store)
}

// newPipeline builds a pipeline from appConfig. The generator is only built
// when withGenerator is set, so dataset-only commands work without a model.
func newPipeline(st *store.Store, withGenerator bool) (*pipeline.Pipeline, error) {
	p := &pipeline.Pipeline{
		Config: appConfig,
		Logger: logger,
	}
	if st != nil {
		p.Store = st
	}

	if withGenerator {
		g, err := generate.New(appConfig.Generation, nil)
		if err != nil {
			return nil, err
		}
		p.Generator = g
	}

	var c cache.Cache
	if appConfig.Search.CacheTTL > 0 {
		c = cache.NewMemory(appConfig.Search.CacheTTL, 2*appConfig.Search.CacheTTL)
	}
	p.Providers = search.NewProviders(appConfig.Search, c)
	return p, nil
}

func printYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
