package config

import (
	"github.com/riceup/riceup/pkg/errors"
)

// EssentialGroup is the one group that must always be present, required
// and non-empty.
const EssentialGroup = "essential"

// Validate enforces the configuration invariants. It is called once by
// Load; a Config that fails validation is never handed to the planner.
func (c *Config) Validate() error {
	essential, ok := c.Group(EssentialGroup)
	if !ok {
		return errors.New(errors.ErrConfigValid, "essential package group is missing")
	}
	if !essential.Required {
		return errors.New(errors.ErrConfigValid, "essential package group must be marked required")
	}
	if len(essential.Packages) == 0 {
		return errors.New(errors.ErrConfigValid, "essential package group must not be empty")
	}

	seenGroups := make(map[string]bool)
	for _, g := range c.Groups {
		if g.Name == "" {
			return errors.New(errors.ErrConfigValid, "package group with empty name")
		}
		if seenGroups[g.Name] {
			return errors.New(errors.ErrConfigValid, "duplicate package group").
				WithDetail("group", g.Name)
		}
		seenGroups[g.Name] = true
	}

	if len(c.Tools) == 0 {
		return errors.New(errors.ErrConfigValid, "no source tools configured")
	}

	seenTools := make(map[string]bool)
	wmCount := 0
	for _, t := range c.Tools {
		if t.Name == "" {
			return errors.New(errors.ErrConfigValid, "source tool with empty name")
		}
		if seenTools[t.Name] {
			return errors.New(errors.ErrConfigValid, "duplicate source tool").
				WithDetail("tool", t.Name)
		}
		seenTools[t.Name] = true

		if t.Repo == "" {
			return errors.New(errors.ErrConfigValid, "source tool has no repository").
				WithDetail("tool", t.Name)
		}
		if t.WindowManager {
			wmCount++
		}
	}

	if wmCount == 0 {
		return errors.New(errors.ErrConfigValid, "no tool is marked as the window manager")
	}
	if wmCount > 1 {
		return errors.New(errors.ErrConfigValid, "more than one tool is marked as the window manager")
	}

	return nil
}
