package genome

import "context"

// AuthChecker validates the token against the auth service and resolves the
// owning username.
type AuthChecker interface {
	WhoAmI(ctx context.Context) (string, error)
}

// WorkspaceClient exposes the remote object-listing capability.
type WorkspaceClient interface {
	GetWorkspaceInfo(ctx context.Context, id int64) (WorkspaceInfo, error)
	ListObjects(ctx context.Context, workspace string, minObjectID, maxObjectID int64) ([]Ref, error)
}

// ExportClient exposes the remote object-export capability.
type ExportClient interface {
	Export(ctx context.Context, ref Ref, format Format) (Payload, error)
}

// GenomeLister enumerates the genome objects of a narrative.
type GenomeLister interface {
	List(ctx context.Context, narrativeID int64) ([]Ref, error)
}

// GenomeExporter downloads one genome and writes its files to disk.
type GenomeExporter interface {
	Export(ctx context.Context, ref Ref, format Format) error
}
