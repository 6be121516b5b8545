package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"ooz/internal/gateway"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [hdfs-dir]",
	Short: "List a remote directory",
	Long: `List an HDFS directory through the file gateway.

Examples:
  ooz ls                      # list the project root
  ooz ls /user/hadoop/app     # list a directory`,
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	dir := profile.ProjectRoot
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given and no project_root configured")
	}

	gw, err := openGateway(profile)
	if err != nil {
		return err
	}
	defer gw.Close()

	entries, err := gw.List(dir)
	if err != nil {
		return err
	}

	printListing(entries)
	return nil
}

func printListing(entries []gateway.FileStatus) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		size := fmt.Sprintf("%d", e.Length)
		if e.Type == "DIRECTORY" {
			size = "-"
		}
		modified := ""
		if e.Modified > 0 {
			modified = time.UnixMilli(e.Modified).Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Type, size, modified, e.Name)
	}
	w.Flush()
}
