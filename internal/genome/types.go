// Package genome defines the core types of the narrative download pipeline.
package genome

import "fmt"

// Format identifies one of the supported export file formats.
type Format string

// Supported export formats, matching the -f flag values.
const (
	FormatGenbank      Format = "gbk"
	FormatGFF          Format = "gff"
	FormatProteinFasta Format = "faa"
)

// ContigsDir receives the nucleotide fasta side output of GenBank exports.
const ContigsDir = "contigs"

// layout maps a format to its output subdirectory and file extension.
type layout struct {
	Dir string
	Ext string
}

var layouts = map[Format]layout{
	FormatGenbank:      {Dir: "genbank", Ext: ".gbk"},
	FormatGFF:          {Dir: "gff", Ext: ".gff"},
	FormatProteinFasta: {Dir: "proteins", Ext: ".faa"},
}

// ParseFormat validates a format flag value.
func ParseFormat(raw string) (Format, error) {
	f := Format(raw)
	if _, ok := layouts[f]; !ok {
		return "", fmt.Errorf("format not supported: %q (acceptable values: gbk, gff, faa): %w", raw, ErrInvalidArgument)
	}
	return f, nil
}

// Dir returns the output subdirectory for the format.
func (f Format) Dir() string {
	return layouts[f].Dir
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return layouts[f].Ext
}

// Ref addresses one workspace object version.
type Ref struct {
	WorkspaceID int64
	ObjectID    int64
	Version     int64
	Name        string
	Type        string
}

// String renders the ref in the wsid/objid/version form used by the platform.
func (r Ref) String() string {
	return fmt.Sprintf("%d/%d/%d", r.WorkspaceID, r.ObjectID, r.Version)
}

// WorkspaceInfo is the subset of workspace metadata the lister needs.
type WorkspaceInfo struct {
	ID          int64
	Name        string
	MaxObjectID int64
}

// Payload is the body returned by the remote export capability.
type Payload struct {
	// Filename is the name suggested by the server, empty when absent.
	Filename string
	// Body holds the raw file or archive bytes.
	Body []byte
	// Archive is true when Body is a zip archive rather than a flat file.
	Archive bool
}
