package models

// SourceExtension is the extension of generated source files
const SourceExtension = ".java"

// BinaryExtension is the extension of compiled class files
const BinaryExtension = ".class"

// GeneratedArtifact is the output of one emission
type GeneratedArtifact struct {
	RelativePath string // conventional path below the destination root
	Content      string // escaped, ASCII-only source text
}

// SourcePath returns the conventional relative source path for d
func SourcePath(d *TypeDescriptor) string {
	return d.BinaryName() + SourceExtension
}

// ClassEntryName returns the archive entry name of the compiled implementation
func ClassEntryName(d *TypeDescriptor) string {
	return d.BinaryName() + BinaryExtension
}
