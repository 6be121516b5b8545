package cmd

import "github.com/spf13/cobra"

var runOpts submitOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit and start a workflow job",
	Long:  `Submit a workflow job and immediately start it. Shorthand for 'submit --start'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runOpts.start = true
		return submitJob(&runOpts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	registerSubmitFlags(runCmd, &runOpts)
}
