package kbase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/genomedepot/kbfetch/internal/genome"
)

// Workspace tuple indices per the service API. workspace_info is
// [id, workspace, owner, moddate, max_objid, user_permission, globalread,
// lockstat, metadata]; object_info is [objid, name, type, save_date,
// version, saved_by, wsid, workspace, chsum, size, meta].
const (
	wsInfoID       = 0
	wsInfoName     = 1
	wsInfoMaxObjID = 4

	objInfoObjID   = 0
	objInfoName    = 1
	objInfoType    = 2
	objInfoVersion = 4
	objInfoWsID    = 6
)

// GetWorkspaceInfo resolves a narrative id to its backing workspace.
func (c *Client) GetWorkspaceInfo(ctx context.Context, id int64) (genome.WorkspaceInfo, error) {
	raw, err := c.call(ctx, "Workspace.get_workspace_info", map[string]any{"id": id})
	if err != nil {
		return genome.WorkspaceInfo{}, err
	}

	var tuple []any
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return genome.WorkspaceInfo{}, fmt.Errorf("decode workspace_info: %w", err)
	}
	if len(tuple) <= wsInfoMaxObjID {
		return genome.WorkspaceInfo{}, fmt.Errorf("workspace_info tuple too short: %d fields", len(tuple))
	}

	info := genome.WorkspaceInfo{}
	if info.ID, err = tupleInt(tuple, wsInfoID); err != nil {
		return genome.WorkspaceInfo{}, fmt.Errorf("workspace_info: %w", err)
	}
	if info.Name, err = tupleString(tuple, wsInfoName); err != nil {
		return genome.WorkspaceInfo{}, fmt.Errorf("workspace_info: %w", err)
	}
	if info.MaxObjectID, err = tupleInt(tuple, wsInfoMaxObjID); err != nil {
		return genome.WorkspaceInfo{}, fmt.Errorf("workspace_info: %w", err)
	}
	return info, nil
}

// ListObjects returns the object descriptors in one object-id window of the
// named workspace, in the order the service reports them.
func (c *Client) ListObjects(ctx context.Context, workspace string, minObjectID, maxObjectID int64) ([]genome.Ref, error) {
	params := map[string]any{
		"workspaces":  []string{workspace},
		"minObjectID": minObjectID,
		"maxObjectID": maxObjectID,
	}
	raw, err := c.call(ctx, "Workspace.list_objects", params)
	if err != nil {
		return nil, err
	}

	var tuples [][]any
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil, fmt.Errorf("decode object_info list: %w", err)
	}

	refs := make([]genome.Ref, 0, len(tuples))
	for i, tuple := range tuples {
		if len(tuple) <= objInfoWsID {
			return nil, fmt.Errorf("object_info tuple %d too short: %d fields", i, len(tuple))
		}
		ref := genome.Ref{}
		if ref.ObjectID, err = tupleInt(tuple, objInfoObjID); err != nil {
			return nil, fmt.Errorf("object_info tuple %d: %w", i, err)
		}
		if ref.Name, err = tupleString(tuple, objInfoName); err != nil {
			return nil, fmt.Errorf("object_info tuple %d: %w", i, err)
		}
		if ref.Type, err = tupleString(tuple, objInfoType); err != nil {
			return nil, fmt.Errorf("object_info tuple %d: %w", i, err)
		}
		if ref.Version, err = tupleInt(tuple, objInfoVersion); err != nil {
			return nil, fmt.Errorf("object_info tuple %d: %w", i, err)
		}
		if ref.WorkspaceID, err = tupleInt(tuple, objInfoWsID); err != nil {
			return nil, fmt.Errorf("object_info tuple %d: %w", i, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func tupleInt(tuple []any, idx int) (int64, error) {
	v, ok := tuple[idx].(float64)
	if !ok {
		return 0, fmt.Errorf("field %d is %T, want number", idx, tuple[idx])
	}
	return int64(v), nil
}

func tupleString(tuple []any, idx int) (string, error) {
	v, ok := tuple[idx].(string)
	if !ok {
		return "", fmt.Errorf("field %d is %T, want string", idx, tuple[idx])
	}
	return v, nil
}
