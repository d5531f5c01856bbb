package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/access"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetCurrentProject returns the project stashed by the project-role
// middleware, collaborator rows included.
func GetCurrentProject(ctx *gin.Context) (models.Project, error) {
	value, exists := ctx.Get(types.ContextProjectKey)

	if !exists {
		return models.Project{}, fmt.Errorf("Project not resolved for this request")
	}

	project, ok := value.(models.Project)

	if !ok {
		return models.Project{}, fmt.Errorf("Invalid project type in context")
	}

	return project, nil
}

func GetCurrentRole(ctx *gin.Context) (access.Role, error) {
	value, exists := ctx.Get(types.ContextRoleKey)

	if !exists {
		return access.RoleNone, fmt.Errorf("Role not resolved for this request")
	}

	role, ok := value.(access.Role)

	if !ok {
		return access.RoleNone, fmt.Errorf("Invalid role type in context")
	}

	return role, nil
}

func GetTaskID(ctx *gin.Context) (uint64, error) {
	taskIDStr := ctx.Param("task_id")

	if taskIDStr == "" {
		return 0, fmt.Errorf("Task ID not found")
	}

	taskID, err := strconv.ParseUint(taskIDStr, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("Invalid Task ID")
	}

	return taskID, nil
}
