package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	envHome = "LOCATOR_ADVISOR_HOME"
	appDir  = "locator-advisor"
)

var (
	homeOnce sync.Once
	homeDir  string
)

// GetHome returns the directory searched for config.yaml when no
// --config flag is given. The first match wins:
//  1. $LOCATOR_ADVISOR_HOME
//  2. <home> when the binary is installed as <home>/bin/locator-advisor
//  3. <user config dir>/locator-advisor, if it holds a config file
//  4. the working directory
func GetHome() string {
	homeOnce.Do(func() {
		homeDir = resolveHome()
	})
	return homeDir
}

func resolveHome() string {
	if dir := os.Getenv(envHome); dir != "" {
		return dir
	}
	if dir, ok := installRoot(); ok {
		return dir
	}
	if dir, ok := userConfigHome(); ok {
		return dir
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

func installRoot() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	bin := filepath.Dir(exe)
	if filepath.Base(bin) != "bin" {
		return "", false
	}
	return filepath.Dir(bin), true
}

func userConfigHome() (string, bool) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	dir := filepath.Join(base, appDir)
	for _, name := range configNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return dir, true
		}
	}
	return "", false
}

// ResetHome clears the cached home directory. Tests use it after
// changing $LOCATOR_ADVISOR_HOME.
func ResetHome() {
	homeOnce = sync.Once{}
	homeDir = ""
}
