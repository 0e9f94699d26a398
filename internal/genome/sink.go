package genome

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

var invalidFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeName makes a genome display name safe for use as a filename. The
// same sanitized form is used for manifest entries so the two stay in sync.
func SanitizeName(name string) string {
	safe := invalidFilenameChars.ReplaceAllString(name, "_")
	if safe == "" {
		safe = "genome"
	}
	return safe
}

// Sink writes exported genome files and the manifest to disk.
type Sink struct {
	root   string
	logger *zap.Logger
}

// NewSink returns a sink rooted at dir, creating it if needed.
func NewSink(root string, logger *zap.Logger) (*Sink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", root, err)
	}
	return &Sink{root: root, logger: logger}, nil
}

// WriteFormatFile writes one genome file into the format's subdirectory and
// returns the path written.
func (s *Sink) WriteFormatFile(format Format, name string, data []byte) (string, error) {
	return s.write(filepath.Join(format.Dir(), SanitizeName(name)+format.Ext()), data)
}

// WriteContigs writes the nucleotide fasta side output of a GenBank export.
func (s *Sink) WriteContigs(name string, data []byte) (string, error) {
	return s.write(filepath.Join(ContigsDir, SanitizeName(name)+".fasta"), data)
}

// WriteManifest writes the manifest file at the sink root, overwriting any
// previous run's manifest.
func (s *Sink) WriteManifest(filename string, m Manifest) (string, error) {
	target := filepath.Join(s.root, filename)
	if err := os.WriteFile(target, m.Render(), 0o600); err != nil {
		return "", fmt.Errorf("write manifest %s: %w", target, err)
	}
	return target, nil
}

func (s *Sink) write(rel string, data []byte) (string, error) {
	target := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create dir for %s: %w", target, err)
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	s.logger.Info("File created", zap.String("path", target), zap.Int("bytes", len(data)))
	return target, nil
}
