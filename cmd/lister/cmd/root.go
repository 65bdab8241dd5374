// Package cmd implements the lister CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/ebay-lister/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "lister",
		Short: "CLI client for the eBay listing engine",
		Long: "lister is a command-line client for the ebay-lister API.\n" +
			"It connects seller accounts, publishes listings, and runs\n" +
			"metric syncs from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.lister.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("account", "", "account key to act on (default: the active account)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account")))

	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(listingsCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(quotaCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lister")
	}

	viper.SetEnvPrefix("LISTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func accountFlag() string {
	return viper.GetString("account")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
