package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ooz/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ooz configuration",
}

var configSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or update configuration",
	Long:  `Interactive setup to create or update the ooz configuration file.`,
	RunE:  runConfigSetup,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetupCmd)
}

func runConfigSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("ooz Configuration Setup")
	fmt.Println("=======================")
	fmt.Println()

	profileName := prompt(reader, "Profile name", "default")

	oozieHost := prompt(reader, "Oozie host", "")
	if oozieHost == "" {
		return fmt.Errorf("oozie host is required")
	}

	ooziePort, err := promptPort(reader, "Oozie port", config.DefaultOoziePort)
	if err != nil {
		return err
	}

	gatewayProto := prompt(reader, "File gateway protocol (httpfs/ftp)", config.DefaultGateway)
	if gatewayProto != "httpfs" && gatewayProto != "ftp" {
		return fmt.Errorf("gateway protocol must be 'httpfs' or 'ftp'")
	}

	gatewayHost := prompt(reader, "File gateway host", oozieHost)
	gatewayPort, err := promptPort(reader, "File gateway port", config.DefaultHTTPFSPort)
	if err != nil {
		return err
	}

	user := prompt(reader, "Hadoop user", "")

	var password string
	if gatewayProto == "ftp" {
		if user == "" {
			return fmt.Errorf("user is required for the ftp gateway")
		}
		password = prompt(reader, "Gateway password", "")
	}

	defaultRoot := ""
	if user != "" {
		defaultRoot = fmt.Sprintf("/user/%s/ooz", strings.ToLower(user))
	}
	projectRoot := prompt(reader, "Project root (HDFS staging directory)", defaultRoot)

	profile := &config.Profile{
		OozieHost:   oozieHost,
		OoziePort:   ooziePort,
		HTTPFSHost:  gatewayHost,
		HTTPFSPort:  gatewayPort,
		Gateway:     gatewayProto,
		User:        user,
		Password:    password,
		ProjectRoot: projectRoot,
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	// Load existing config or create new
	cfg, err := config.Load(cfgFile)
	if err != nil {
		cfg = &config.Config{
			Profiles:       make(map[string]*config.Profile),
			DefaultProfile: profileName,
		}
	}

	cfg.Profiles[profileName] = profile

	if len(cfg.Profiles) > 1 {
		setDefault := prompt(reader, fmt.Sprintf("Set '%s' as default profile? (y/n)", profileName), "y")
		if strings.ToLower(setDefault) == "y" {
			cfg.DefaultProfile = profileName
		}
	} else {
		cfg.DefaultProfile = profileName
	}

	if err := cfg.Save(cfgFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Printf("Config file: ~/%s\n", config.DefaultConfigFile)
	fmt.Printf("Default profile: %s\n", cfg.DefaultProfile)

	return nil
}

func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func promptPort(reader *bufio.Reader, label string, defaultPort int) (int, error) {
	portStr := prompt(reader, label, strconv.Itoa(defaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port: %s", portStr)
	}
	return port, nil
}
