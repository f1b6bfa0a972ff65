// Package config defines riceup's declarative configuration model:
// which package groups to install, which tools to build from source,
// and the defaults used when generating session files.
//
// The model is constructed once at startup and never mutated afterwards.
package config

// PackageGroup is a named, independently skippable set of apt packages.
// An empty Packages list means the feature is disabled and the group
// contributes nothing to the install list.
type PackageGroup struct {
	Name     string   `koanf:"name" toml:"name"`
	Required bool     `koanf:"required" toml:"required"`
	Packages []string `koanf:"packages" toml:"packages"`

	// Launch holds session-script lines contributed by this group when
	// it installs successfully (e.g. "picom -b"). Order is preserved.
	Launch []string `koanf:"launch" toml:"launch"`
}

// Enabled reports whether the group should be installed at all.
func (g PackageGroup) Enabled() bool {
	return len(g.Packages) > 0
}

// SourceTool is a utility built from a source checkout rather than
// installed as a prebuilt package.
type SourceTool struct {
	Name string `koanf:"name" toml:"name"`
	Repo string `koanf:"repo" toml:"repo"`

	// Patch is an optional URL to a unified diff applied once after clone.
	Patch string `koanf:"patch" toml:"patch"`

	// Config is an optional local file copied over the tool's config.h
	// before building.
	Config string `koanf:"config" toml:"config"`

	// WindowManager marks the tool the generated session script execs.
	// Exactly one tool must carry this flag.
	WindowManager bool `koanf:"window_manager" toml:"window_manager"`
}

// GPUPackages maps each detectable GPU vendor to its driver packages.
type GPUPackages struct {
	Nvidia []string `koanf:"nvidia" toml:"nvidia"`
	AMD    []string `koanf:"amd" toml:"amd"`
	Intel  []string `koanf:"intel" toml:"intel"`
}

// Defaults holds target paths and cosmetic settings.
type Defaults struct {
	// SourceRoot is where tools are cloned, ~-expanded at load time.
	SourceRoot string `koanf:"source_root" toml:"source_root"`

	// SessionFile is the generated X session script, relative to $HOME.
	SessionFile string `koanf:"session_file" toml:"session_file"`

	// ProfileFile is the shell startup file that receives the riceup
	// snippet, relative to $HOME.
	ProfileFile string `koanf:"profile_file" toml:"profile_file"`

	// Wallpaper is passed to feh by the wm group's launch line.
	Wallpaper string `koanf:"wallpaper" toml:"wallpaper"`
}

// Policy makes failure handling explicit rather than implied by exit codes.
type Policy struct {
	// OptionalGroupsFatal aborts the run when an optional package group
	// fails to install. Default false: record a warning and continue.
	OptionalGroupsFatal bool `koanf:"optional_groups_fatal" toml:"optional_groups_fatal"`
}

// Config is the root configuration value. Immutable after Load.
type Config struct {
	Defaults Defaults       `koanf:"defaults" toml:"defaults"`
	Policy   Policy         `koanf:"policy" toml:"policy"`
	Groups   []PackageGroup `koanf:"groups" toml:"groups"`
	GPU      GPUPackages    `koanf:"gpu" toml:"gpu"`
	Tools    []SourceTool   `koanf:"tools" toml:"tools"`
}

// Group returns the group with the given name, if present.
func (c *Config) Group(name string) (PackageGroup, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return PackageGroup{}, false
}

// WindowManager returns the tool flagged as the window manager.
// Validate guarantees exactly one exists.
func (c *Config) WindowManager() SourceTool {
	for _, t := range c.Tools {
		if t.WindowManager {
			return t
		}
	}
	return SourceTool{}
}

// ForVendor returns the driver packages for a vendor key as produced
// by the gpu detector ("nvidia", "amd", "intel"). Unknown keys get nil.
func (p GPUPackages) ForVendor(vendor string) []string {
	switch vendor {
	case "nvidia":
		return p.Nvidia
	case "amd":
		return p.AMD
	case "intel":
		return p.Intel
	default:
		return nil
	}
}
