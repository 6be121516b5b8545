package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <hdfs-path> | <jobid>",
	Short: "Display a remote file or a job's workflow definition",
	Long: `Display the content of an HDFS file through the file gateway, or
the workflow definition of a job.

Examples:
  ooz cat /user/hadoop/app/workflow.xml    # display HDFS file
  ooz cat 0000012-201203213-oozie-W        # display workflow definition`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	target := args[0]

	if isRemotePath(target) {
		gw, err := openGateway(profile)
		if err != nil {
			return err
		}
		defer gw.Close()

		content, err := gw.ReadFile(target)
		if err != nil {
			return err
		}
		fmt.Print(string(content))
		return nil
	}

	definition, err := newJobClient(profile).Definition(target)
	if err != nil {
		return err
	}
	fmt.Print(string(definition))
	return nil
}

// isRemotePath tells an HDFS path apart from a job id. Safe on empty
// arguments.
func isRemotePath(target string) bool {
	return strings.HasPrefix(target, "/")
}
