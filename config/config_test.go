package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ftpd.toml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 2137
timeout = 190

[user.Henryk]
password = "a very secret password"
directory = "/home/henryk"

[user.Maria]
password = "123"
directory = "/home/maria/ftp"

[log]
level = "warn"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 2137 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	// unset keys keep their defaults
	if cfg.Server.IP != "127.0.0.1" {
		t.Errorf("IP = %q", cfg.Server.IP)
	}
	if cfg.Server.DataTimeout != 180 {
		t.Errorf("DataTimeout = %d", cfg.Server.DataTimeout)
	}
	if cfg.ControlTimeout() != 190*time.Second {
		t.Errorf("ControlTimeout = %v", cfg.ControlTimeout())
	}
	if cfg.Users["Henryk"].Password != "a very secret password" {
		t.Errorf("Henryk password = %q", cfg.Users["Henryk"].Password)
	}
	if cfg.Users["Maria"].Directory != "/home/maria/ftp" {
		t.Errorf("Maria directory = %q", cfg.Users["Maria"].Directory)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.FTPAddr() != "127.0.0.1:2137" {
		t.Errorf("FTPAddr = %q", cfg.FTPAddr())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FTP_SERVER_PORT", "2222")
	t.Setenv("FTP_DEFAULT_USER", "envuser")
	t.Setenv("FTP_DEFAULT_PASS", "envpass")
	t.Setenv("FTP_DEFAULT_ROOT", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 2222 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	user, ok := cfg.Users["envuser"]
	if !ok {
		t.Fatal("bootstrap user missing")
	}
	if user.Password != "envpass" {
		t.Errorf("bootstrap password = %q", user.Password)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate with no users succeeded")
	}

	cfg.Users["ok"] = UserConfig{Password: "x", Directory: t.TempDir()}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Users["bad"] = UserConfig{Password: "x", Directory: "/definitely/not/here"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate with a missing root succeeded")
	}

	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0666); err != nil {
		t.Fatal(err)
	}
	delete(cfg.Users, "bad")
	cfg.Users["file"] = UserConfig{Password: "x", Directory: file}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate with a non-directory root succeeded")
	}
}
