package cmd

import (
	"fmt"
	"os"

	"ooz/internal/config"
	"ooz/internal/gateway"
	"ooz/internal/logging"
	"ooz/internal/oozie"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	profile string
	debug   bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ooz",
	Short: "Oozie workflow CLI tool",
	Long:  `ooz submits, starts, and polls Oozie workflow jobs and stages files into HDFS.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(debug)

		if cmd.Name() == "setup" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if profile != "" {
			cfg.DefaultProfile = profile
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.oozconfig)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile to use (overrides default)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func GetCurrentProfile() (*config.Profile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return cfg.GetProfile(cfg.DefaultProfile)
}

func newJobClient(p *config.Profile) *oozie.Client {
	c := oozie.NewClient(p.OozieHost, p.OoziePort)
	if p.ProjectRoot != "" {
		c.SetProjectRoot(p.ProjectRoot)
	}
	return c
}

func openGateway(p *config.Profile) (gateway.Gateway, error) {
	gw, err := gateway.New(p.Gateway, p.HTTPFSHost, p.HTTPFSPort, p.User, p.Password)
	if err != nil {
		return nil, err
	}
	if err := gw.Connect(); err != nil {
		return nil, err
	}
	return gw, nil
}
