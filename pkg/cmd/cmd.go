// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/relicvault/pkg/app"
)

var (
	// configPath 配置文件搜索路径，空则使用默认搜索路径.
	configPath string

	// debug 附加调试输出开关.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "relicvault",
		Short: "Museum treasure media staging and sync service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}

	serveCmd = &cobra.Command{
		Use:     "serve",
		Short:   "start the HTTP server",
		Aliases: []string{"server", "run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file search path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable extra debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerMediaCommands()
}
