// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/optable/bytesize/cli"
	"github.com/optable/bytesize/unit"
)

func (g *Globals) configDir() (*cli.ConfigDir, error) {
	if g.ConfigDir == "" {
		return cli.DefaultConfigDir(appName, cli.ProfileLoader{})
	}
	if err := os.MkdirAll(g.ConfigDir, 0755); err != nil {
		return nil, err
	}
	return cli.NewConfigDir(g.ConfigDir, cli.ProfileLoader{})
}

// profile loads the profile selected by --profile.
func (g *Globals) profile() (*cli.Profile, error) {
	dir, err := g.configDir()
	if err != nil {
		return nil, err
	}
	profile, err := cli.LoadProfile(dir, g.ProfileName)
	if err != nil {
		return nil, fmt.Errorf("failed loading profile: %w", err)
	}
	return profile, nil
}

type ProfileCmd struct {
	List   ProfileListCmd   `cmd:"" help:"List the profiles, the current one is starred."`
	Show   ProfileShowCmd   `cmd:"" help:"Print a profile, the current one by default."`
	Save   ProfileSaveCmd   `cmd:"" help:"Create or update a profile from flags."`
	Use    ProfileUseCmd    `cmd:"" help:"Mark a profile as current."`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete a profile."`
}

type ProfileListCmd struct{}

func (cmd *ProfileListCmd) Run(g *Globals) error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	names, err := dir.List()
	if err != nil {
		return err
	}
	current, _, err := dir.Current()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(g.ctx).Warn().Err(err).Msg("Ignoring invalid current profile")
	}

	for _, name := range names {
		marker := " "
		if name == current {
			marker = "*"
		}
		if _, err := fmt.Fprintf(g.out, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}

type ProfileShowCmd struct {
	Name string `arg:"" optional:"" help:"Profile name."`
}

func (cmd *ProfileShowCmd) Run(g *Globals) error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	name := cmd.Name
	if name == "" {
		name = g.ProfileName
	}
	profile, err := cli.LoadProfile(dir, name)
	if err != nil {
		return err
	}

	data, err := cli.ProfileLoader{}.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.out, string(data))
	return err
}

type ProfileSaveCmd struct {
	Name        string `arg:"" help:"Profile name."`
	DefaultUnit string `help:"Unit of numerals written without one." placeholder:"UNIT"`
	Use         bool   `help:"Also mark the profile as current."`

	cli.FormatFlags `embed:""`
}

// Run updates the named profile in place, starting from the defaults when it
// does not exist yet.
func (cmd *ProfileSaveCmd) Run(g *Globals) error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}

	profile, err := cli.LoadProfile(dir, cmd.Name)
	if errors.Is(err, os.ErrNotExist) {
		profile, err = cli.DefaultProfile(), nil
	}
	if err != nil {
		return err
	}

	if err := cmd.Apply(&profile.Format); err != nil {
		return err
	}
	if cmd.DefaultUnit != "" {
		p, err := unit.Lookup(cmd.DefaultUnit)
		if err != nil {
			return err
		}
		profile.DefaultUnit = &p
	}

	if err := dir.Set(cmd.Name, profile); err != nil {
		return err
	}
	zerolog.Ctx(g.ctx).Info().Str("profile", cmd.Name).Msg("Saved profile")

	if cmd.Use {
		return dir.Use(cmd.Name)
	}
	return nil
}

type ProfileUseCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (cmd *ProfileUseCmd) Run(g *Globals) error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	return dir.Use(cmd.Name)
}

type ProfileDeleteCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (cmd *ProfileDeleteCmd) Run(g *Globals) error {
	dir, err := g.configDir()
	if err != nil {
		return err
	}
	return dir.Delete(cmd.Name)
}
