// Description: startup configuration for the file servers
// Values come from a TOML file in the shape the server has always used
// ([server], [user.<name>], [log]), with environment variables taking
// precedence so containerized deployments can override without editing
// files.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig          `toml:"server"`
	Users  map[string]UserConfig `toml:"user"`
	Log    LogConfig             `toml:"log"`
}

type ServerConfig struct {
	IP   string `toml:"ip"`
	Port int    `toml:"port"`
	// Timeout is the control-channel idle timeout in seconds.
	Timeout int `toml:"timeout"`
	// DataTimeout bounds establishing one data connection, in seconds.
	DataTimeout int `toml:"data_timeout"`
	// SFTPAddr enables the SFTP frontend when non-empty.
	SFTPAddr string `toml:"sftp_addr"`
	// MetricsAddr enables the admin HTTP server when non-empty.
	MetricsAddr string `toml:"metrics_addr"`
}

type UserConfig struct {
	Password  string `toml:"password"`
	Directory string `toml:"directory"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			IP:          "127.0.0.1",
			Port:        2121,
			Timeout:     60,
			DataTimeout: 180,
		},
		Users: map[string]UserConfig{},
		Log:   LogConfig{Level: "INFO"},
	}
}

// Load reads the TOML file at path into the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override the file: FTP_SERVER_IP,
// FTP_SERVER_PORT, SFTP_SERVER_ADDR, METRICS_SERVER_ADDR, LOG_LEVEL, and the
// FTP_DEFAULT_USER / FTP_DEFAULT_PASS / FTP_DEFAULT_ROOT trio for a bootstrap
// user.
func (c *Config) applyEnv() {
	if v := os.Getenv("FTP_SERVER_IP"); v != "" {
		c.Server.IP = v
	}
	if v := os.Getenv("FTP_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SFTP_SERVER_ADDR"); v != "" {
		c.Server.SFTPAddr = v
	}
	if v := os.Getenv("METRICS_SERVER_ADDR"); v != "" {
		c.Server.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	user := os.Getenv("FTP_DEFAULT_USER")
	pass := os.Getenv("FTP_DEFAULT_PASS")
	root := os.Getenv("FTP_DEFAULT_ROOT")
	if user != "" && root != "" {
		c.Users[user] = UserConfig{Password: pass, Directory: root}
	}
}

// Validate refuses configurations the server cannot run with: no users, or
// a user whose root directory is missing.
func (c *Config) Validate() error {
	if len(c.Users) == 0 {
		return fmt.Errorf("no users configured")
	}
	for name, user := range c.Users {
		info, err := os.Stat(user.Directory)
		if err != nil {
			return fmt.Errorf("user %s: root directory %s: %w", name, user.Directory, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("user %s: root %s is not a directory", name, user.Directory)
		}
	}
	return nil
}

// FTPAddr returns the control listener address.
func (c *Config) FTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.IP, c.Server.Port)
}

// ControlTimeout returns the control-channel timeout as a duration.
func (c *Config) ControlTimeout() time.Duration {
	return time.Duration(c.Server.Timeout) * time.Second
}

// DataTimeout returns the data-channel timeout as a duration.
func (c *Config) DataTimeout() time.Duration {
	return time.Duration(c.Server.DataTimeout) * time.Second
}
