package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

// ListNotifications returns the caller's unread notifications, newest first.
// Read notifications persist but are never shown again.
func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	var notifications []models.Notification

	if err := db.DB.Where("user_id = ? AND read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		log.Printf("Failed to list notifications for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to retrieve notifications"})
		return
	}

	response := []types.NotificationResponse{}

	for _, notification := range notifications {
		response = append(response, types.NotificationResponse{
			ID:        notification.ID,
			Text:      notification.Text,
			Link:      notification.Link,
			Read:      notification.Read,
			CreatedAt: notification.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func MarkNotificationsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
		return
	}

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		log.Printf("Failed to mark notifications read for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Failed to update notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"msg": "Notifications marked as read"})
}
