package genome

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Exporter downloads one genome at a time and writes the resulting files
// through the sink.
type Exporter struct {
	client ExportClient
	sink   *Sink
	logger *zap.Logger
}

// NewExporter returns an Exporter backed by the given export client.
func NewExporter(client ExportClient, sink *Sink, logger *zap.Logger) *Exporter {
	return &Exporter{client: client, sink: sink, logger: logger}
}

// Export fetches the genome in the requested format and writes its files.
// GenBank payloads additionally carry a nucleotide fasta that lands in the
// contigs subdirectory. Any failure is reported as ErrExport so the caller
// can skip the genome and continue.
func (e *Exporter) Export(ctx context.Context, ref Ref, format Format) error {
	payload, err := e.client.Export(ctx, ref, format)
	if err != nil {
		return fmt.Errorf("export %s: %w", ref, err)
	}
	if len(payload.Body) == 0 {
		return fmt.Errorf("export %s: empty payload: %w", ref, ErrExport)
	}
	if payload.Archive {
		return e.extractArchive(ref, format, payload)
	}
	if _, err := e.sink.WriteFormatFile(format, ref.Name, payload.Body); err != nil {
		return fmt.Errorf("export %s: %w", ref, err)
	}
	return nil
}

// extractArchive picks the relevant entries out of a zip payload: the entry
// matching the format's extension goes to the format subdirectory, and for
// GenBank a fasta entry goes to contigs.
func (e *Exporter) extractArchive(ref Ref, format Format, payload Payload) error {
	reader, err := zip.NewReader(bytes.NewReader(payload.Body), int64(len(payload.Body)))
	if err != nil {
		return fmt.Errorf("export %s: open archive: %w: %w", ref, err, ErrExport)
	}

	wroteMain := false
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name))
		switch {
		case isFormatEntry(format, ext):
			data, err := readArchiveEntry(entry)
			if err != nil {
				return fmt.Errorf("export %s: %w: %w", ref, err, ErrExport)
			}
			if _, err := e.sink.WriteFormatFile(format, ref.Name, data); err != nil {
				return fmt.Errorf("export %s: %w", ref, err)
			}
			wroteMain = true
		case format == FormatGenbank && (ext == ".fasta" || ext == ".fa" || ext == ".fna"):
			data, err := readArchiveEntry(entry)
			if err != nil {
				return fmt.Errorf("export %s: %w: %w", ref, err, ErrExport)
			}
			if _, err := e.sink.WriteContigs(ref.Name, data); err != nil {
				return fmt.Errorf("export %s: %w", ref, err)
			}
		default:
			e.logger.Debug("Skipping archive entry",
				zap.String("ref", ref.String()),
				zap.String("entry", entry.Name),
			)
		}
	}
	if !wroteMain {
		return fmt.Errorf("export %s: archive has no %s entry: %w", ref, format.Ext(), ErrExport)
	}
	return nil
}

// isFormatEntry matches an archive entry extension against the format,
// accepting the long spellings the platform uses (.gbff, .gff3).
func isFormatEntry(format Format, ext string) bool {
	switch format {
	case FormatGenbank:
		return ext == ".gbk" || ext == ".gbff" || ext == ".gb"
	case FormatGFF:
		return ext == ".gff" || ext == ".gff3"
	case FormatProteinFasta:
		return ext == ".faa"
	default:
		return false
	}
}

func readArchiveEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", entry.Name, err)
	}
	defer rc.Close() //nolint:errcheck // read-only close
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", entry.Name, err)
	}
	return data, nil
}
