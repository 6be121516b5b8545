package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = ".oozconfig"
	DefaultOoziePort  = 11000
	DefaultHTTPFSPort = 14000
	DefaultGateway    = "httpfs"
)

type Profile struct {
	OozieHost   string `yaml:"oozie_host"`
	OoziePort   int    `yaml:"oozie_port"`
	HTTPFSHost  string `yaml:"httpfs_host"`
	HTTPFSPort  int    `yaml:"httpfs_port"`
	Gateway     string `yaml:"gateway"` // httpfs, ftp
	User        string `yaml:"user"`
	Password    string `yaml:"password"` // gateway login, ftp only
	ProjectRoot string `yaml:"project_root"`
}

type Config struct {
	Profiles       map[string]*Profile `yaml:"profiles"`
	DefaultProfile string              `yaml:"default_profile"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot find home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s\nRun 'ooz config setup' to create one", path)
		}
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	for name, p := range cfg.Profiles {
		if p.OoziePort == 0 {
			p.OoziePort = DefaultOoziePort
		}
		if p.HTTPFSPort == 0 {
			p.HTTPFSPort = DefaultHTTPFSPort
		}
		if p.HTTPFSHost == "" {
			p.HTTPFSHost = p.OozieHost
		}
		if p.Gateway == "" {
			p.Gateway = DefaultGateway
		}
		cfg.Profiles[name] = p
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot find home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigFile)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	// 0600: owner read/write only (may contain a gateway password)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

func (c *Config) GetProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return nil, fmt.Errorf("no profile specified and no default profile set")
	}

	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile '%s' not found", name)
	}

	return p, nil
}

func (p *Profile) Validate() error {
	if p.OozieHost == "" {
		return fmt.Errorf("oozie_host is required")
	}
	if p.Gateway != "httpfs" && p.Gateway != "ftp" {
		return fmt.Errorf("gateway must be 'httpfs' or 'ftp'")
	}
	if p.Gateway == "ftp" && p.User == "" {
		return fmt.Errorf("user is required for the ftp gateway")
	}
	return nil
}
