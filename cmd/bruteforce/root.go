package main

import (
	"github.com/spf13/cobra"
	commonconfig "github.com/ykhdr/hash-bruteforce/common/config"
	"github.com/ykhdr/hash-bruteforce/config"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "bruteforce",
		Short:        "Reverse a hash digest by exhaustive search",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a KDL config file, "+commonconfig.DefaultConfigPath+" is used when present")
	cmd.AddCommand(newCrackCmd(opts), newServeCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.InitializeConfig(o.configPath)
}
