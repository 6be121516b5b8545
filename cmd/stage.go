package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	stageFiles []string
	stageRoot  string
)

var stageCmd = &cobra.Command{
	Use:   "stage -f <file> [-f <file> ...]",
	Short: "Stage local files into the project root",
	Long: `Upload local files into the HDFS project root through the file
gateway, without submitting a job. Uploads are best effort: one file's
failure does not stop the rest.`,
	RunE: runStage,
}

func init() {
	rootCmd.AddCommand(stageCmd)
	stageCmd.Flags().StringArrayVarP(&stageFiles, "file", "f", nil, "local file to stage (repeatable)")
	stageCmd.Flags().StringVar(&stageRoot, "root", "", "remote directory (overrides profile project_root)")
	_ = stageCmd.MarkFlagRequired("file")
}

func runStage(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	client := newJobClient(profile)
	if stageRoot != "" {
		client.SetProjectRoot(stageRoot)
	}
	client.AddFiles(stageFiles...)
	if len(client.Files()) == 0 {
		return fmt.Errorf("no stageable files")
	}

	gw, err := openGateway(profile)
	if err != nil {
		return err
	}
	defer gw.Close()
	client.SetGateway(gw)

	results := client.StageFiles()
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("FAILED  %s: %v\n", r.LocalPath, r.Err)
		} else {
			fmt.Printf("OK      %s -> %s\n", r.LocalPath, r.RemotePath)
		}
	}
	return results.Err()
}
