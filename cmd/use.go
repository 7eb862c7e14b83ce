package cmd

import (
	"github.com/spf13/cobra"
)

var useOptions chatOptions

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the chat app",
	Long:  `Switch to the specified profile and immediately start the chat application.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runChat(&useOptions, args[0])
	},
}

func init() {
	useOptions.addFlags(useCmd)
	rootCmd.AddCommand(useCmd)
}
