package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest is a patch: nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

func ListTasks(ctx *gin.Context) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	var tasks []models.Task

	if err := db.DB.Where("project_id = ?", project.ID).Order("created_at DESC").Find(&tasks).Error; err != nil {
		log.Printf("Failed to list tasks for project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve tasks"})
		return
	}

	response := []types.TaskResponse{}

	for _, task := range tasks {
		response = append(response, buildTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return
	}

	status := req.Status

	if status == "" {
		status = models.TaskStatusToDo
	}

	if !models.ValidTaskStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid task status"})
		return
	}

	task := models.Task{
		ProjectID:   project.ID,
		CreatedByID: userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		log.Printf("Failed to create task in project %d: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusOK, buildTaskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request"})
		return
	}

	if req.Status != nil && !models.ValidTaskStatus(*req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid task status"})
		return
	}

	task, ok := findProjectTask(ctx)

	if !ok {
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}

	if req.Description != nil {
		task.Description = *req.Description
	}

	// Any status may move to any other, including itself. A board-column
	// move is just this field changing.
	if req.Status != nil {
		task.Status = *req.Status
	}

	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := db.DB.Save(&task).Error; err != nil {
		log.Printf("Failed to update task %d: %v", task.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, buildTaskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	task, ok := findProjectTask(ctx)

	if !ok {
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task %d: %v", task.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to delete task"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"msg": "Task removed"})
}

// findProjectTask resolves the :task_id param within the current project.
// On failure it writes the error response and returns ok=false.
func findProjectTask(ctx *gin.Context) (models.Task, bool) {
	project, err := utils.GetCurrentProject(ctx)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve project"})
		return models.Task{}, false
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"msg": "Task not found"})
		return models.Task{}, false
	}

	var task models.Task

	if err := db.DB.Where("id = ? AND project_id = ?", taskID, project.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"msg": "Task not found"})
		} else {
			log.Printf("Failed to fetch task %d: %v", taskID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve task"})
		}
		return models.Task{}, false
	}

	return task, true
}

func buildTaskResponse(task models.Task) types.TaskResponse {
	return types.TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		CreatedByID: task.CreatedByID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
}
