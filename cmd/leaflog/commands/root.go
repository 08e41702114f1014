package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd is the root command for the leaflog client.
var RootCmd = &cobra.Command{
	Use:              "leaflog",
	Short:            "Client for the leaflog accumulator server",
	TraverseChildren: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log"))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringP("url", "u", "http://127.0.0.1:8080", "Base URL of the leaflog server")
	RootCmd.PersistentFlags().StringP("tree", "t", "default", "Name of the accumulator to address")
	RootCmd.PersistentFlags().String("log", "info", "debug, info, warn, error, fatal, panic")
	viper.BindPFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(
		newInsertCmd(),
		newRootHashCmd(),
		newLeavesCmd(),
		newHashCmd(),
	)
}
