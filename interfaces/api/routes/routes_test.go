package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskmaster/application/serviceimpl"
	"taskmaster/domain/ports"
	"taskmaster/infrastructure/memory"
	"taskmaster/interfaces/api/handlers"
	"taskmaster/pkg/utils"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	userRepo := memory.NewUserRepository()
	projectRepo := memory.NewProjectRepository()
	taskRepo := memory.NewTaskRepository()
	commentRepo := memory.NewCommentRepository()
	cache := ports.NewNoopDashboardCache()
	tokens := utils.NewTokenManager("test-secret", 7*24*time.Hour)

	h := handlers.NewHandlers(&handlers.Services{
		UserService:      serviceimpl.NewUserService(userRepo, tokens, bcrypt.MinCost, time.Now),
		ProjectService:   serviceimpl.NewProjectService(projectRepo, userRepo, cache, time.Now),
		TaskService:      serviceimpl.NewTaskService(taskRepo, projectRepo, userRepo, cache, time.Now),
		CommentService:   serviceimpl.NewCommentService(commentRepo, taskRepo, projectRepo, userRepo, cache, time.Now),
		DashboardService: serviceimpl.NewDashboardService(projectRepo, taskRepo, commentRepo, userRepo, cache, 0),
		AppName:          "TaskMaster API",
		Version:          "1.0.0",
	})

	return &testServer{t: t, app: NewApp(AppOptions{Name: "TaskMaster API"}, h)}
}

// call performs a request and decodes the JSON response into out when out is non-nil.
func (s *testServer) call(method, path, token string, body any, out any) int {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type authResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	} `json:"user"`
}

type errorResult struct {
	Error string `json:"error"`
}

type projectResult struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	OwnerID string   `json:"ownerId"`
	Members []string `json:"members"`
}

type taskResult struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	AssignedTo *string `json:"assignedTo"`
	CreatedBy  string  `json:"createdBy"`
	Assignee   *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"assignee"`
	Project *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
}

type commentResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  *struct {
		ID string `json:"id"`
	} `json:"author"`
}

func (s *testServer) register(name string) authResult {
	s.t.Helper()
	var res authResult
	status := s.call(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     name + "@example.com",
		"password":  "secret-" + name,
		"firstName": name,
		"lastName":  "Example",
	}, &res)
	require.Equal(s.t, http.StatusCreated, status)
	require.NotEmpty(s.t, res.Token)
	return res
}

func TestServiceInfoAndUnknownRoutes(t *testing.T) {
	s := newTestServer(t)

	var health map[string]any
	assert.Equal(t, http.StatusOK, s.call(http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health["status"])

	var root map[string]any
	assert.Equal(t, http.StatusOK, s.call(http.MethodGet, "/", "", nil, &root))
	assert.Equal(t, "1.0.0", root["version"])
	assert.Contains(t, root["endpoints"], "projects")

	var notFound errorResult
	assert.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/nope", "", nil, &notFound))
	assert.Equal(t, "Endpoint not found", notFound.Error)
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	assert.Equal(t, "alice@example.com", alice.User.Email)

	var dup errorResult
	assert.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "x", "firstName": "A", "lastName": "B",
	}, &dup))
	assert.NotEmpty(t, dup.Error)

	var missing errorResult
	assert.Equal(t, http.StatusBadRequest, s.call(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@y.z"}, &missing))

	var wrong, unknown errorResult
	assert.Equal(t, http.StatusUnauthorized, s.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "bad",
	}, &wrong))
	assert.Equal(t, http.StatusUnauthorized, s.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "bad",
	}, &unknown))
	assert.Equal(t, wrong, unknown)

	var login authResult
	assert.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret-alice",
	}, &login))
	assert.Equal(t, alice.User.ID, login.User.ID)

	var me map[string]any
	assert.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/auth/me", login.Token, nil, &me))
	assert.Equal(t, alice.User.ID, me["id"])
	assert.NotContains(t, me, "password")

	assert.Equal(t, http.StatusUnauthorized, s.call(http.MethodGet, "/api/auth/me", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.call(http.MethodGet, "/api/projects", "garbage", nil, nil))
}

func TestAliceAndBobScenario(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	bob := s.register("bob")

	var p1 projectResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/projects", alice.Token, map[string]string{"name": "P1"}, &p1))
	assert.Equal(t, alice.User.ID, p1.OwnerID)
	assert.Equal(t, []string{alice.User.ID}, p1.Members)

	// Bob cannot see the project before he is invited
	assert.Equal(t, http.StatusForbidden, s.call(http.MethodGet, "/api/projects/"+p1.ID, bob.Token, nil, nil))

	require.Equal(t, http.StatusOK, s.call(http.MethodPost, "/api/projects/"+p1.ID+"/members", alice.Token, map[string]string{"userId": bob.User.ID}, &p1))
	assert.Equal(t, []string{alice.User.ID, bob.User.ID}, p1.Members)

	var t1 taskResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/tasks", alice.Token, map[string]string{
		"title": "T1", "projectId": p1.ID, "assignedTo": bob.User.ID,
	}, &t1))
	assert.Equal(t, "TODO", t1.Status)
	assert.Equal(t, "medium", t1.Priority)
	require.NotNil(t, t1.Assignee)
	assert.Equal(t, bob.User.ID, t1.Assignee.ID)

	var got taskResult
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/tasks/"+t1.ID, bob.Token, nil, &got))
	assert.Equal(t, "T1", got.Title)

	var updated taskResult
	require.Equal(t, http.StatusOK, s.call(http.MethodPut, "/api/tasks/"+t1.ID, bob.Token, map[string]string{"status": "DONE"}, &updated))
	assert.Equal(t, "DONE", updated.Status)

	var mine []taskResult
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/tasks/my/tasks", bob.Token, nil, &mine))
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Project)
	assert.Equal(t, "P1", mine[0].Project.Name)

	var comment commentResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/comments", bob.Token, map[string]string{
		"taskId": t1.ID, "content": "  done and dusted ",
	}, &comment))
	assert.Equal(t, "done and dusted", comment.Content)
	assert.Equal(t, bob.User.ID, comment.Author.ID)

	var stats struct {
		TaskStats    map[string]int `json:"taskStats"`
		ProjectStats map[string]int `json:"projectStats"`
		CommentStats map[string]int `json:"commentStats"`
	}
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/dashboard/stats", bob.Token, nil, &stats))
	assert.Equal(t, 1, stats.TaskStats["done"])
	assert.Equal(t, 1, stats.ProjectStats["member"])
	assert.Equal(t, 1, stats.CommentStats["myComments"])

	var overview []map[string]any
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/dashboard/project-overview", alice.Token, nil, &overview))
	require.Len(t, overview, 1)
	assert.Equal(t, true, overview[0]["isOwner"])

	// Alice created T1, Bob did not and does not own P1
	var denied errorResult
	assert.Equal(t, http.StatusForbidden, s.call(http.MethodDelete, "/api/tasks/"+t1.ID, bob.Token, nil, &denied))
	assert.NotEmpty(t, denied.Error)

	var msg map[string]string
	assert.Equal(t, http.StatusOK, s.call(http.MethodDelete, "/api/tasks/"+t1.ID, alice.Token, nil, &msg))
	assert.NotEmpty(t, msg["message"])

	assert.Equal(t, http.StatusNotFound, s.call(http.MethodGet, "/api/tasks/"+t1.ID, alice.Token, nil, nil))

	// the owner can never be removed
	assert.Equal(t, http.StatusBadRequest, s.call(http.MethodDelete, "/api/projects/"+p1.ID+"/members/"+alice.User.ID, alice.Token, nil, nil))
	require.Equal(t, http.StatusOK, s.call(http.MethodDelete, "/api/projects/"+p1.ID+"/members/"+bob.User.ID, alice.Token, nil, &p1))
	assert.Equal(t, []string{alice.User.ID}, p1.Members)
}

func TestUpdateTaskUnassignsWithNull(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")

	var p projectResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/projects", alice.Token, map[string]string{"name": "P"}, &p))

	var task taskResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/tasks", alice.Token, map[string]string{
		"title": "T", "projectId": p.ID, "assignedTo": alice.User.ID,
	}, &task))
	require.NotNil(t, task.AssignedTo)

	var updated taskResult
	require.Equal(t, http.StatusOK, s.call(http.MethodPut, "/api/tasks/"+task.ID, alice.Token, map[string]any{"assignedTo": nil}, &updated))
	assert.Nil(t, updated.AssignedTo)
	assert.Equal(t, "T", updated.Title)

	var bad errorResult
	assert.Equal(t, http.StatusBadRequest, s.call(http.MethodPut, "/api/tasks/"+task.ID, alice.Token, map[string]string{"status": "WAITING"}, &bad))
	assert.Contains(t, bad.Error, "status")
}

func TestUnrelatedUserIsForbiddenEverywhere(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice")
	carol := s.register("carol")

	var p projectResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/projects", alice.Token, map[string]string{"name": "Private"}, &p))

	var task taskResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/tasks", alice.Token, map[string]string{"title": "T", "projectId": p.ID}, &task))

	var comment commentResult
	require.Equal(t, http.StatusCreated, s.call(http.MethodPost, "/api/comments", alice.Token, map[string]string{"taskId": task.ID, "content": "hi"}, &comment))

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/projects/" + p.ID, nil},
		{http.MethodPut, "/api/projects/" + p.ID, map[string]string{"name": "Mine now"}},
		{http.MethodDelete, "/api/projects/" + p.ID, nil},
		{http.MethodPost, "/api/projects/" + p.ID + "/members", map[string]string{"userId": carol.User.ID}},
		{http.MethodDelete, "/api/projects/" + p.ID + "/members/" + alice.User.ID, nil},
		{http.MethodGet, "/api/tasks/project/" + p.ID, nil},
		{http.MethodPost, "/api/tasks", map[string]string{"title": "x", "projectId": p.ID}},
		{http.MethodGet, "/api/tasks/" + task.ID, nil},
		{http.MethodPut, "/api/tasks/" + task.ID, map[string]string{"status": "DONE"}},
		{http.MethodDelete, "/api/tasks/" + task.ID, nil},
		{http.MethodGet, "/api/comments/task/" + task.ID, nil},
		{http.MethodPost, "/api/comments", map[string]string{"taskId": task.ID, "content": "sneaky"}},
		{http.MethodPut, "/api/comments/" + comment.ID, map[string]string{"content": "edited"}},
		{http.MethodDelete, "/api/comments/" + comment.ID, nil},
	}

	for _, r := range requests {
		var res errorResult
		status := s.call(r.method, r.path, carol.Token, r.body, &res)
		assert.Equal(t, http.StatusForbidden, status, "%s %s", r.method, r.path)
		assert.NotEmpty(t, res.Error, "%s %s", r.method, r.path)
	}

	var projects []projectResult
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/projects", carol.Token, nil, &projects))
	assert.Empty(t, projects)

	var stats struct {
		ProjectStats   map[string]int `json:"projectStats"`
		RecentActivity []any          `json:"recentActivity"`
	}
	require.Equal(t, http.StatusOK, s.call(http.MethodGet, "/api/dashboard/stats", carol.Token, nil, &stats))
	assert.Equal(t, 0, stats.ProjectStats["total"])
	assert.Empty(t, stats.RecentActivity)
}
