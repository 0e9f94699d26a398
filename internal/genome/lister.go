package genome

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// genomeType is the workspace type prefix that marks an object as a genome.
const genomeType = "KBaseGenomes.Genome"

// listWindow bounds the object-id range of a single list_objects call; the
// service caps results per call, so larger workspaces are walked in windows.
const listWindow = 10000

// Lister enumerates the genome objects of a narrative's backing workspace.
type Lister struct {
	ws     WorkspaceClient
	logger *zap.Logger
}

// NewLister returns a Lister backed by the given workspace client.
func NewLister(ws WorkspaceClient, logger *zap.Logger) *Lister {
	return &Lister{ws: ws, logger: logger}
}

// List resolves the narrative's workspace and returns its genome-typed
// objects in the order the platform reports them.
func (l *Lister) List(ctx context.Context, narrativeID int64) ([]Ref, error) {
	info, err := l.ws.GetWorkspaceInfo(ctx, narrativeID)
	if err != nil {
		return nil, fmt.Errorf("resolve narrative %d: %w", narrativeID, err)
	}
	l.logger.Info("Workspace validated",
		zap.Int64("workspace_id", info.ID),
		zap.String("workspace", info.Name),
		zap.Int64("max_object_id", info.MaxObjectID),
	)

	var refs []Ref
	for lo := int64(0); lo < info.MaxObjectID; lo += listWindow {
		objects, err := l.ws.ListObjects(ctx, info.Name, lo+1, lo+listWindow)
		if err != nil {
			return nil, fmt.Errorf("list objects %d-%d in %s: %w", lo+1, lo+listWindow, info.Name, err)
		}
		for _, obj := range objects {
			if strings.Contains(obj.Type, genomeType) {
				refs = append(refs, obj)
			}
		}
	}
	return refs, nil
}
