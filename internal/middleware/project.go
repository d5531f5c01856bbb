package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/access"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

// RequireProjectMember admits any member (owner, editor or viewer).
func RequireProjectMember() gin.HandlerFunc {
	return requireProjectRole(access.IsMember)
}

// RequireProjectEditor admits callers with task mutation rights (owner or
// editor).
func RequireProjectEditor() gin.HandlerFunc {
	return requireProjectRole(access.CanEdit)
}

// RequireProjectOwner admits only the project owner. Sharing and project
// deletion go through this.
func RequireProjectOwner() gin.HandlerFunc {
	return requireProjectRole(func(role access.Role) bool {
		return role == access.RoleOwner
	})
}

// requireProjectRole loads the project named by the :project_id param along
// with its collaborator rows, resolves the caller's role and aborts with 403
// unless allowed(role). On success the project and role are stashed in the
// request context for the handler.
func requireProjectRole(allowed func(access.Role) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userValue, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		user, ok := userValue.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		projectID, err := strconv.ParseUint(ctx.Param("project_id"), 10, 32)

		if err != nil {
			// Malformed ids are indistinguishable from missing ones.
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "Project not found"})
			return
		}

		var project models.Project

		if err := db.DB.Preload("Collaborators").First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "Project not found"})
			} else {
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
			}
			return
		}

		role := access.Resolve(user.ID, &project)

		if !allowed(role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Access denied: insufficient permissions for this project"})
			return
		}

		ctx.Set(types.ContextProjectKey, project)
		ctx.Set(types.ContextRoleKey, role)
		ctx.Next()
	}
}
