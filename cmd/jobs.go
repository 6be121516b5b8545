package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"ooz/internal/oozie"

	"github.com/spf13/cobra"
)

var (
	jobsFilter string
	jobsMax    int
	jobsLog    bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [jobid]",
	Short: "List workflow jobs or show job status/log",
	Long:  `List workflow jobs on the server, or show status/log of a specific job.`,
	RunE:  runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.Flags().StringVar(&jobsFilter, "filter", "", "server-side filter (e.g. 'status=RUNNING;user=hadoop')")
	jobsCmd.Flags().IntVar(&jobsMax, "len", 50, "maximum number of jobs to list")
	jobsCmd.Flags().BoolVarP(&jobsLog, "log", "l", false, "show job log (requires jobid)")
}

func runJobs(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}
	client := newJobClient(profile)

	if len(args) > 0 {
		jobID := args[0]

		if jobsLog {
			log, err := client.Log(jobID)
			if err != nil {
				return err
			}
			fmt.Print(string(log))
			return nil
		}

		info, err := client.Info(jobID)
		if err != nil {
			return err
		}
		printJobDetail(info)
		return nil
	}

	if jobsLog {
		return fmt.Errorf("--log requires a jobid")
	}

	jobs, err := client.List(jobsFilter, jobsMax)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	printJobList(jobs)
	return nil
}

func printJobList(jobs []oozie.JobInfo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPP\tUSER\tSTATUS\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.AppName, j.User, j.Status, j.CreatedTime)
	}
	w.Flush()
}

func printJobDetail(job *oozie.JobInfo) {
	fmt.Printf("Job ID:    %s\n", job.ID)
	fmt.Printf("App Name:  %s\n", job.AppName)
	fmt.Printf("User:      %s\n", job.User)
	fmt.Printf("Status:    %s\n", job.Status)
	if job.AppPath != "" {
		fmt.Printf("App Path:  %s\n", job.AppPath)
	}
	if job.CreatedTime != "" {
		fmt.Printf("Created:   %s\n", job.CreatedTime)
	}
	if job.StartTime != "" {
		fmt.Printf("Started:   %s\n", job.StartTime)
	}
	if job.EndTime != "" {
		fmt.Printf("Ended:     %s\n", job.EndTime)
	}
}
