package workspaceanalytics

import "errors"

var (
	// ErrWorkspaceNotFound is returned when the workspace id does not resolve.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrNotWorkspaceMember is returned when the requesting user is not a
	// member of the workspace being analyzed.
	ErrNotWorkspaceMember = errors.New("user is not a member of this workspace")
)
