package cmd

import (
	"fmt"
	"strings"
	"time"

	"ooz/internal/oozie"

	"github.com/spf13/cobra"
)

type submitOptions struct {
	properties string
	sets       []string
	files      []string
	start      bool
	wait       bool
}

var submitOpts submitOptions

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a workflow job",
	Long: `Submit a workflow job from a job.properties XML file or inline
properties, staging any attached files into the project root first.

Examples:
  ooz submit --properties job.xml
  ooz submit --set oozie.wf.application.path=hdfs:///user/me/app --set queueName=default
  ooz submit --properties job.xml -f workflow.xml -f lib/app.jar --start --wait`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return submitJob(&submitOpts)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	registerSubmitFlags(submitCmd, &submitOpts)
	submitCmd.Flags().BoolVar(&submitOpts.start, "start", false, "start the job after submission")
}

func registerSubmitFlags(cmd *cobra.Command, o *submitOptions) {
	cmd.Flags().StringVar(&o.properties, "properties", "", "path to a job configuration XML file")
	cmd.Flags().StringArrayVar(&o.sets, "set", nil, "job property as name=value (repeatable)")
	cmd.Flags().StringArrayVarP(&o.files, "file", "f", nil, "local file to stage into the project root (repeatable)")
	cmd.Flags().BoolVarP(&o.wait, "wait", "w", false, "wait for the job to reach a terminal state")
}

func submitJob(o *submitOptions) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	src, err := propertiesSource(o)
	if err != nil {
		return err
	}

	client := newJobClient(profile)
	client.SetProperties(src)
	client.AddFiles(o.files...)

	if len(client.Files()) > 0 {
		gw, err := openGateway(profile)
		if err != nil {
			return err
		}
		defer gw.Close()
		client.SetGateway(gw)
	}

	jobID, err := client.Submit()
	if err != nil {
		return err
	}
	fmt.Printf("Job %s submitted\n", jobID)

	if o.start {
		if err := client.Start(jobID); err != nil {
			return err
		}
		fmt.Printf("Job %s started\n", jobID)
	}

	if !o.wait {
		return nil
	}
	return waitForJob(client, jobID)
}

func propertiesSource(o *submitOptions) (oozie.PropertiesSource, error) {
	if o.properties != "" && len(o.sets) > 0 {
		return nil, fmt.Errorf("--properties and --set are mutually exclusive")
	}

	if len(o.sets) > 0 {
		props := make(oozie.MappingProperties, len(o.sets))
		for _, s := range o.sets {
			name, value, err := parseProperty(s)
			if err != nil {
				return nil, err
			}
			props[name] = value
		}
		return props, nil
	}

	if o.properties != "" {
		return oozie.FileProperties(o.properties), nil
	}

	return nil, fmt.Errorf("either --properties or --set is required")
}

func parseProperty(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid property %q (expected name=value)", s)
	}
	return name, value, nil
}

func isTerminal(status string) bool {
	switch status {
	case "SUCCEEDED", "KILLED", "FAILED":
		return true
	}
	return false
}

func waitForJob(client *oozie.Client, jobID string) error {
	fmt.Printf("Waiting for %s...", jobID)

	for {
		status, err := client.Status(jobID)
		if err != nil {
			fmt.Println()
			return err
		}

		if isTerminal(status) {
			fmt.Println()
			fmt.Printf("Job %s completed — %s\n", jobID, status)

			if status != "SUCCEEDED" {
				return fmt.Errorf("job ended with status %s", status)
			}
			return nil
		}

		fmt.Print(".")
		time.Sleep(5 * time.Second)
	}
}
