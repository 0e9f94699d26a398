package genome

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExportClient is a mock implementation of the ExportClient interface.
type MockExportClient struct {
	mock.Mock
}

func (m *MockExportClient) Export(ctx context.Context, ref Ref, format Format) (Payload, error) {
	args := m.Called(ctx, ref, format)
	return args.Get(0).(Payload), args.Error(1)
}

// zipPayload builds a zip archive payload from name->content pairs.
func zipPayload(t *testing.T, entries map[string]string) Payload {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return Payload{Body: buf.Bytes(), Archive: true}
}

func newTestSink(t *testing.T) (*Sink, string) {
	t.Helper()
	dir := t.TempDir()
	sink, err := NewSink(dir, zap.NewNop())
	require.NoError(t, err)
	return sink, dir
}

func TestExporterWritesFlatPayload(t *testing.T) {
	t.Parallel()

	sink, dir := newTestSink(t)
	ref := Ref{WorkspaceID: 69, ObjectID: 4, Version: 1, Name: "BsubWT"}

	client := new(MockExportClient)
	client.On("Export", mock.Anything, ref, FormatGFF).Return(Payload{
		Body: []byte("##gff-version 3\n"),
	}, nil)

	exporter := NewExporter(client, sink, zap.NewNop())
	require.NoError(t, exporter.Export(context.Background(), ref, FormatGFF))

	data, err := os.ReadFile(filepath.Join(dir, "gff", "BsubWT.gff"))
	require.NoError(t, err)
	require.Equal(t, "##gff-version 3\n", string(data))
}

func TestExporterExtractsGenbankArchiveWithContigs(t *testing.T) {
	t.Parallel()

	sink, dir := newTestSink(t)
	ref := Ref{WorkspaceID: 69, ObjectID: 2, Version: 2, Name: "EcoliK12"}

	client := new(MockExportClient)
	client.On("Export", mock.Anything, ref, FormatGenbank).Return(zipPayload(t, map[string]string{
		"EcoliK12.gbff":           "LOCUS       chr1\n",
		"EcoliK12_assembly.fasta": ">chr1\nACGT\n",
	}), nil)

	exporter := NewExporter(client, sink, zap.NewNop())
	require.NoError(t, exporter.Export(context.Background(), ref, FormatGenbank))

	gbk, err := os.ReadFile(filepath.Join(dir, "genbank", "EcoliK12.gbk"))
	require.NoError(t, err)
	require.Equal(t, "LOCUS       chr1\n", string(gbk))

	contigs, err := os.ReadFile(filepath.Join(dir, "contigs", "EcoliK12.fasta"))
	require.NoError(t, err)
	require.Equal(t, ">chr1\nACGT\n", string(contigs))
}

func TestExporterIgnoresFastaOutsideGenbank(t *testing.T) {
	t.Parallel()

	sink, dir := newTestSink(t)
	ref := Ref{WorkspaceID: 69, ObjectID: 5, Version: 1, Name: "MixedBag"}

	client := new(MockExportClient)
	client.On("Export", mock.Anything, ref, FormatGFF).Return(zipPayload(t, map[string]string{
		"MixedBag.gff3":          "##gff-version 3\n",
		"MixedBag_contigs.fasta": ">chr1\nACGT\n",
	}), nil)

	exporter := NewExporter(client, sink, zap.NewNop())
	require.NoError(t, exporter.Export(context.Background(), ref, FormatGFF))

	_, err := os.Stat(filepath.Join(dir, "gff", "MixedBag.gff"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, ContigsDir))
	require.True(t, os.IsNotExist(err), "contigs dir should not exist for gff exports")
}

func TestExporterRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	sink, _ := newTestSink(t)
	ref := Ref{WorkspaceID: 69, ObjectID: 6, Version: 1, Name: "Empty"}

	client := new(MockExportClient)
	client.On("Export", mock.Anything, ref, FormatProteinFasta).Return(Payload{}, nil)

	exporter := NewExporter(client, sink, zap.NewNop())
	err := exporter.Export(context.Background(), ref, FormatProteinFasta)
	require.ErrorIs(t, err, ErrExport)
}

func TestExporterRejectsArchiveWithoutFormatEntry(t *testing.T) {
	t.Parallel()

	sink, _ := newTestSink(t)
	ref := Ref{WorkspaceID: 69, ObjectID: 7, Version: 1, Name: "Odd"}

	client := new(MockExportClient)
	client.On("Export", mock.Anything, ref, FormatGenbank).Return(zipPayload(t, map[string]string{
		"readme.txt": "nothing useful\n",
	}), nil)

	exporter := NewExporter(client, sink, zap.NewNop())
	err := exporter.Export(context.Background(), ref, FormatGenbank)
	require.ErrorIs(t, err, ErrExport)
}
