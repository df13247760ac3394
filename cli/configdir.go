// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
)

// ConfigLoader converts configuration files from and to their in-memory
// representation.
type ConfigLoader interface {
	Unmarshal([]byte) (interface{}, error)
	Marshal(interface{}) ([]byte, error)
}

// ConfigDir manages named configuration files in a directory, one of which
// can be marked as current.
type ConfigDir struct {
	path   string
	loader ConfigLoader
}

// The known suffix lets other programs keep files in the directory without
// them being listed.
const (
	configExt   = ".conf"
	currentLink = "current"
)

var ErrInvalidName = errors.New("invalid configuration name")

func NewConfigDir(path string, loader ConfigLoader) (*ConfigDir, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !stat.Mode().IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	return &ConfigDir{path, loader}, nil
}

// DefaultConfigDir opens $XDG_CONFIG_HOME/<app>, creating it if needed.
func DefaultConfigDir(app string, loader ConfigLoader) (*ConfigDir, error) {
	marker, err := xdg.ConfigFile(filepath.Join(app, currentLink))
	if err != nil {
		return nil, fmt.Errorf("failed locating config dir: %w", err)
	}
	return NewConfigDir(filepath.Dir(marker), loader)
}

func (c *ConfigDir) Path() string {
	return c.path
}

func (c *ConfigDir) LoadPath(path string) (interface{}, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed loading config at %s: %w", path, err)
	}

	return c.loader.Unmarshal(bytes)
}

func (c *ConfigDir) DumpPath(path string, configData interface{}) error {
	bytes, err := c.loader.Marshal(configData)
	if err != nil {
		return fmt.Errorf("failed marshaling config at %s: %w", path, err)
	}

	return os.WriteFile(path, bytes, 0644)
}

func (c *ConfigDir) configPath(name string) (string, error) {
	if name == "" || name == currentLink || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(c.path, name) + configExt, nil
}

func (c *ConfigDir) Get(name string) (interface{}, error) {
	path, err := c.configPath(name)
	if err != nil {
		return nil, err
	}
	return c.LoadPath(path)
}

func (c *ConfigDir) Set(name string, configData interface{}) error {
	path, err := c.configPath(name)
	if err != nil {
		return err
	}
	return c.DumpPath(path, configData)
}

// Use marks an existing configuration as current, replacing the previous one.
func (c *ConfigDir) Use(name string) error {
	configPath, err := c.configPath(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err != nil {
		return err
	}

	linkPath := filepath.Join(c.path, currentLink)
	if err := os.Remove(linkPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Symlink(configPath, linkPath)
}

// Delete removes a configuration, and the current marker if it pointed to it.
func (c *ConfigDir) Delete(name string) error {
	configPath, err := c.configPath(name)
	if err != nil {
		return err
	}

	linkPath := filepath.Join(c.path, currentLink)
	if target, err := os.Readlink(linkPath); err == nil && target == configPath {
		if err := os.Remove(linkPath); err != nil {
			return err
		}
	}
	return os.Remove(configPath)
}

func configName(path string) string {
	return filepath.Base(strings.TrimSuffix(path, configExt))
}

// List returns the configuration names in lexical order.
func (c *ConfigDir) List() ([]string, error) {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return nil, err
	}

	list := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != configExt || !entry.Type().IsRegular() {
			continue
		}

		list = append(list, configName(entry.Name()))
	}

	sort.Strings(list)
	return list, nil
}

// Current returns the name and content of the current configuration.
func (c *ConfigDir) Current() (string, interface{}, error) {
	linkPath := filepath.Join(c.path, currentLink)
	info, err := os.Lstat(linkPath)
	if err != nil {
		return "", nil, err
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return "", nil, errors.New("invalid current link")
	}

	currentPath, err := os.Readlink(linkPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed loading current link: %w", err)
	}

	config, err := c.LoadPath(currentPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed loading current config: %w", err)
	}
	return configName(currentPath), config, nil
}
