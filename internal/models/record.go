package models

// PackageRecord is one architecture-specific build entry read from a
// Packages index.
type PackageRecord struct {
	// SourceArch is the binary-<arch> directory the record was read
	// from. It can differ from Architecture, e.g. for "all" packages
	// listed in every per-architecture index.
	SourceArch string

	Name         string
	Version      string
	Architecture string

	// Filename is the pool path of the .deb, relative to the
	// repository root. It doubles as the link target and as the path
	// used to stat the artifact.
	Filename string
}

// Artifact is one unique (architecture, pool path) pair for the newest
// version of a package.
type Artifact struct {
	Architecture string
	Filename     string
}
