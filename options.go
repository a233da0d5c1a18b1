package tqvault

type loadConfig struct {
	limits    Limits
	kind      FileKind
	kindSet   bool
	exportDir string
	confirm   ConfirmOverwrite
}

type LoadOption func(*loadConfig)

func WithLimits(l Limits) LoadOption {
	return func(c *loadConfig) { c.limits = l }
}

// WithFileKind overrides the variant normally inferred from the file
// extension (".vault" means vault, anything else a character file).
func WithFileKind(k FileKind) LoadOption {
	return func(c *loadConfig) { c.kind = k; c.kindSet = true }
}

// WithDiagnosticExport makes Load write plain-text item listings into dir
// as a side effect. Export failures are advisory: they end up on
// SaveFile.Warnings and never fail the load.
func WithDiagnosticExport(dir string) LoadOption {
	return func(c *loadConfig) { c.exportDir = dir }
}

// WithConfirmOverwrite installs the policy CopySack consults before
// overwriting a non-empty destination. Without a policy such copies are
// denied.
func WithConfirmOverwrite(f ConfirmOverwrite) LoadOption {
	return func(c *loadConfig) { c.confirm = f }
}

type saveConfig struct {
	backup     Compression
	makeBackup bool
}

type SaveOption func(*saveConfig)

// WithBackup snapshots the current content of the target file into a
// compressed sidecar before it is overwritten.
func WithBackup(comp Compression) SaveOption {
	return func(c *saveConfig) { c.backup = comp; c.makeBackup = true }
}
