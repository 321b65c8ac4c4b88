package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/internal/logger"
)

func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "tidewire",
		Short:        "Periodic workers on a time wheel",
		SilenceUsage: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newRunCommand(v),
		newScheduleCommand(v),
		newVersionCommand(),
	)
	return root
}

// loadConfig binds the flags of cmd, loads the configuration and installs
// the global logger. The returned function flushes the logger.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Configuration, func(), error) {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	restore, err := logger.Setup(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, restore, nil
}
