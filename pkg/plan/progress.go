package plan

// Progress accumulates what actually made it onto the machine during a
// run. Later steps (the dotfile generator) consult it so output
// reflects outcomes, not static configuration.
//
// The run is strictly sequential (single writer), so Progress needs no
// locking.
type Progress struct {
	groups  map[string]bool
	tools   map[string]bool
	backups []string
}

// NewProgress creates an empty Progress.
func NewProgress() *Progress {
	return &Progress{
		groups: make(map[string]bool),
		tools:  make(map[string]bool),
	}
}

// MarkGroup records that a package group installed successfully.
func (p *Progress) MarkGroup(name string) {
	p.groups[name] = true
}

// MarkTool records that a source tool reached its installed state.
func (p *Progress) MarkTool(name string) {
	p.tools[name] = true
}

// AddBackup records a file that was backed up before overwrite.
func (p *Progress) AddBackup(path string) {
	p.backups = append(p.backups, path)
}

// InstalledGroups returns the set of successfully installed groups.
func (p *Progress) InstalledGroups() map[string]bool {
	return p.groups
}

// ToolInstalled reports whether the named tool was installed this run.
func (p *Progress) ToolInstalled(name string) bool {
	return p.tools[name]
}

// Backups returns every file backed up during the run.
func (p *Progress) Backups() []string {
	return p.backups
}
