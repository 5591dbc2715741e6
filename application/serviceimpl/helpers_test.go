package serviceimpl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskmaster/domain/dto"
	"taskmaster/domain/ports"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/infrastructure/memory"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/utils"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// mapCache is a DashboardCache kept in a map. entries holds the current generation only;
// writes for an older generation are dropped since nothing could read them.
type mapCache struct {
	generation    int64
	entries       map[string][]byte
	invalidations int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (int64, bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return c.generation, false, nil
	}
	return c.generation, true, json.Unmarshal(data, dest)
}

func (c *mapCache) Set(_ context.Context, generation int64, key string, value any, _ time.Duration) error {
	if generation != c.generation {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.generation++
	c.entries = map[string][]byte{}
	c.invalidations++
	return nil
}

type fixture struct {
	ctx   context.Context
	clock *testClock
	cache ports.DashboardCache

	userRepo    repositories.UserRepository
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	commentRepo repositories.CommentRepository

	users     services.UserService
	projects  services.ProjectService
	tasks     services.TaskService
	comments  services.CommentService
	dashboard services.DashboardService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, ports.NewNoopDashboardCache())
}

func newFixtureWithCache(t *testing.T, cache ports.DashboardCache) *fixture {
	t.Helper()

	f := &fixture{
		ctx:         context.Background(),
		clock:       &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		cache:       cache,
		userRepo:    memory.NewUserRepository(),
		projectRepo: memory.NewProjectRepository(),
		taskRepo:    memory.NewTaskRepository(),
		commentRepo: memory.NewCommentRepository(),
	}

	tokens := utils.NewTokenManager("test-secret", 7*24*time.Hour).WithClock(f.clock.Now)
	f.users = NewUserService(f.userRepo, tokens, bcrypt.MinCost, f.clock.Now)
	f.projects = NewProjectService(f.projectRepo, f.userRepo, cache, f.clock.Now)
	f.tasks = NewTaskService(f.taskRepo, f.projectRepo, f.userRepo, cache, f.clock.Now)
	f.comments = NewCommentService(f.commentRepo, f.taskRepo, f.projectRepo, f.userRepo, cache, f.clock.Now)
	f.dashboard = NewDashboardService(f.projectRepo, f.taskRepo, f.commentRepo, f.userRepo, cache, time.Minute)
	return f
}

func (f *fixture) register(t *testing.T, name string) string {
	t.Helper()
	resp, err := f.users.Register(f.ctx, &dto.RegisterRequest{
		Email:     name + "@example.com",
		Password:  "password-" + name,
		FirstName: name,
		LastName:  "Tester",
	})
	require.NoError(t, err)
	return resp.User.ID
}

func (f *fixture) project(t *testing.T, ownerID, name string, members ...string) string {
	t.Helper()
	p, err := f.projects.CreateProject(f.ctx, ownerID, &dto.CreateProjectRequest{Name: name})
	require.NoError(t, err)
	for _, m := range members {
		_, err := f.projects.AddMember(f.ctx, p.ID, ownerID, m)
		require.NoError(t, err)
	}
	f.clock.Advance(time.Minute)
	return p.ID
}

func (f *fixture) task(t *testing.T, userID, projectID, title, assignee string) string {
	t.Helper()
	task, err := f.tasks.CreateTask(f.ctx, userID, &dto.CreateTaskRequest{
		Title:      title,
		ProjectID:  projectID,
		AssignedTo: assignee,
	})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	return task.ID
}

func (f *fixture) setStatus(t *testing.T, userID, taskID, status string) {
	t.Helper()
	_, err := f.tasks.UpdateTask(f.ctx, taskID, userID, &dto.UpdateTaskRequest{Status: status})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
}

func requireKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperror.KindOf(err), "error: %v", err)
}
