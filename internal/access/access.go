// Package access resolves a user's effective role on a project. It is pure:
// the project (with its collaborator rows) must already be loaded, and no
// I/O happens here.
package access

import "github.com/taskhive-dev/taskhive/internal/models"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	RoleNone   Role = "none"
)

// Resolve computes the effective role of userID on project. The owner is
// never represented as a collaborator row, so the owner check comes first;
// otherwise the first matching collaborator row wins (a user appears at most
// once by unique index).
func Resolve(userID uint, project *models.Project) Role {
	if project.OwnerID == userID {
		return RoleOwner
	}

	for _, collab := range project.Collaborators {
		if collab.UserID == userID {
			switch collab.Role {
			case string(RoleEditor):
				return RoleEditor
			case string(RoleViewer):
				return RoleViewer
			}
		}
	}

	return RoleNone
}

// IsMember reports whether the role grants read access to the project and
// its tasks.
func IsMember(role Role) bool {
	return role != RoleNone
}

// CanEdit reports whether the role grants task create/update/delete rights.
// Sharing and project deletion are owner-only and checked separately.
func CanEdit(role Role) bool {
	return role == RoleOwner || role == RoleEditor
}

// ValidCollaboratorRole reports whether s names a role that may be granted
// to a collaborator. Owner is implicit and never grantable.
func ValidCollaboratorRole(s string) bool {
	return s == string(RoleEditor) || s == string(RoleViewer)
}
