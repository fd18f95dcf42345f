package main

import (
	"github.com/spf13/cobra"

	"github.com/vbonduro/smartbite/internal/config"
)

var configFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smartbite",
		Short: "AI chef that turns fridge photos and cravings into recipes",
		Long: `SmartBite is a chat assistant that suggests recipes.

Send it a photo and it detects the ingredients before asking a language model
for a recipe; send it text and the request goes to the model directly.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (TOML, YAML or JSON); environment variables take precedence")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newChatCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Load(), nil
	}
	return config.LoadFile(configFile)
}
