package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/access"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type ShareProjectRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=editor viewer"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusOK, buildProjectResponse(project, nil, access.RoleOwner))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	memberOf := db.DB.Model(&models.ProjectCollaborator{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := db.DB.Preload("Collaborators.User").
		Where("(owner_id = ? OR id IN (?))", userID, memberOf)

	if search := ctx.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var projects []models.Project

	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve projects"})
		return
	}

	response := []types.ProjectResponse{}

	for _, project := range projects {
		role := access.Resolve(userID, &project)
		response = append(response, buildProjectResponse(project, project.Collaborators, role))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	role, err := utils.GetCurrentRole(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	collaborators, err := loadCollaborators(project.ID)

	if err != nil {
		log.Printf("Failed to load collaborators for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, buildProjectResponse(project, collaborators, role))
}

func ShareProject(ctx *gin.Context) {
	var req ShareProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	var recipient models.User

	if err := db.DB.Where("email = ?", req.Email).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		} else {
			log.Printf("Failed to look up user by email: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Internal server error"})
		}
		return
	}

	if recipient.ID == currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "You cannot share a project with yourself"})
		return
	}

	for _, collab := range project.Collaborators {
		if collab.UserID == recipient.ID {
			ctx.JSON(http.StatusBadRequest, gin.H{"msg": "User is already a collaborator"})
			return
		}
	}

	grant := models.ProjectCollaborator{
		ProjectID: project.ID,
		UserID:    recipient.ID,
		Role:      req.Role,
	}

	if err := db.DB.Create(&grant).Error; err != nil {
		log.Printf("Failed to add collaborator to project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to share project"})
		return
	}

	// The grant is authoritative; the notification is best-effort. A failed
	// insert here is logged and the share still succeeds.
	notification := models.Notification{
		UserID: recipient.ID,
		Text:   fmt.Sprintf("You were added as a %s to %q by %s", req.Role, project.Title, currentUser.Name),
		Link:   fmt.Sprintf("/project/%d", project.ID),
	}

	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("Failed to create share notification for user %d: %v", recipient.ID, err)
	}

	collaborators, err := loadCollaborators(project.ID)

	if err != nil {
		log.Printf("Failed to load collaborators for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, buildCollaboratorResponses(collaborators))
}

func DeleteProject(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	// Tasks and project go in one transaction so a crash cannot orphan tasks.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectCollaborator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, project.ID).Error
	})

	if err != nil {
		log.Printf("Failed to delete project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"msg": "Project removed"})
}

func loadCollaborators(projectID uint) ([]models.ProjectCollaborator, error) {
	var collaborators []models.ProjectCollaborator

	err := db.DB.Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&collaborators).Error

	return collaborators, err
}

func buildCollaboratorResponses(collaborators []models.ProjectCollaborator) []types.CollaboratorResponse {
	response := []types.CollaboratorResponse{}

	for _, collab := range collaborators {
		response = append(response, types.CollaboratorResponse{
			UserID: collab.UserID,
			Name:   collab.User.Name,
			Email:  collab.User.Email,
			Role:   collab.Role,
		})
	}

	return response
}

func buildProjectResponse(project models.Project, collaborators []models.ProjectCollaborator, role access.Role) types.ProjectResponse {
	return types.ProjectResponse{
		ID:            project.ID,
		Title:         project.Title,
		Description:   project.Description,
		OwnerID:       project.OwnerID,
		Collaborators: buildCollaboratorResponses(collaborators),
		Role:          string(role),
		CreatedAt:     project.CreatedAt,
	}
}
