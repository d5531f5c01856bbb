package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter wires the full router against a fresh in-memory database.
// Handler tests share the package-global db.DB, so they must not run in
// parallel.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "handler-test-secret")
	require.NoError(t, auth.InitJWTSecret())

	name := strings.NewReplacer("/", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectCollaborator{},
		&models.Task{},
		&models.Notification{},
	))

	db.DB = testDB

	return router.NewRouter()
}

func performRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set(types.AuthHeader, token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func errorMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Msg string `json:"msg"`
	}
	decodeBody(t, w, &body)
	return body.Msg
}

func registerUser(t *testing.T, r *gin.Engine, name, email, password string) string {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "register %s: %s", email, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	return body.Token
}

type projectBody struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	OwnerID       uint               `json:"owner_id"`
	Collaborators []collaboratorBody `json:"collaborators"`
	Role          string             `json:"role"`
	CreatedAt     time.Time          `json:"created_at"`
}

type collaboratorBody struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type taskBody struct {
	ID          uint       `json:"id"`
	ProjectID   uint       `json:"project_id"`
	CreatedByID uint       `json:"created_by"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

type notificationBody struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
	Link string `json:"link"`
	Read bool   `json:"read"`
}

func createProject(t *testing.T, r *gin.Engine, token, title, description string) projectBody {
	t.Helper()

	w := performRequest(r, http.MethodPost, "/api/projects", token, gin.H{
		"title":       title,
		"description": description,
	})
	require.Equal(t, http.StatusOK, w.Code, "create project %q: %s", title, w.Body.String())

	var project projectBody
	decodeBody(t, w, &project)
	return project
}

func shareProject(t *testing.T, r *gin.Engine, token string, projectID uint, email, role string) *httptest.ResponseRecorder {
	t.Helper()

	return performRequest(r, http.MethodPost, fmt.Sprintf("/api/projects/%d/share", projectID), token, gin.H{
		"email": email,
		"role":  role,
	})
}

func createTask(t *testing.T, r *gin.Engine, token string, projectID uint, payload gin.H) taskBody {
	t.Helper()

	w := performRequest(r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID), token, payload)
	require.Equal(t, http.StatusOK, w.Code, "create task: %s", w.Body.String())

	var task taskBody
	decodeBody(t, w, &task)
	return task
}

func listTasks(t *testing.T, r *gin.Engine, token string, projectID uint) []taskBody {
	t.Helper()

	w := performRequest(r, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", projectID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, "list tasks: %s", w.Body.String())

	var tasks []taskBody
	decodeBody(t, w, &tasks)
	return tasks
}
