package cmd

import (
	"fmt"

	"ooz/internal/oozie"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <jobid>",
	Short: "Start a submitted job",
	Args:  cobra.ExactArgs(1),
	RunE:  jobAction("start", (*oozie.Client).Start),
}

var suspendCmd = &cobra.Command{
	Use:   "suspend <jobid>",
	Short: "Suspend a running job",
	Args:  cobra.ExactArgs(1),
	RunE:  jobAction("suspend", (*oozie.Client).Suspend),
}

var resumeCmd = &cobra.Command{
	Use:   "resume <jobid>",
	Short: "Resume a suspended job",
	Args:  cobra.ExactArgs(1),
	RunE:  jobAction("resume", (*oozie.Client).Resume),
}

var killCmd = &cobra.Command{
	Use:   "kill <jobid>",
	Short: "Kill a job",
	Args:  cobra.ExactArgs(1),
	RunE:  jobAction("kill", (*oozie.Client).Kill),
}

func init() {
	rootCmd.AddCommand(startCmd, suspendCmd, resumeCmd, killCmd)
}

func jobAction(verb string, action func(*oozie.Client, string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}

		jobID := args[0]
		if err := action(newJobClient(profile), jobID); err != nil {
			return err
		}

		fmt.Printf("Job %s: %s requested\n", jobID, verb)
		return nil
	}
}
