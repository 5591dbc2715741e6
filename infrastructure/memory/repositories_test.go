package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
)

func TestProjectRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	p := &models.Project{ID: "p1", Name: "P1", OwnerID: "u1", Members: []string{"u1"}}
	require.NoError(t, repo.Create(ctx, p))

	// mutating the caller's value must not reach the store
	p.Members[0] = "intruder"

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Members)

	got.Members = append(got.Members, "u2")
	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, again.Members)
}

func TestProjectRepositoryListByUserAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()

	require.NoError(t, repo.Create(ctx, &models.Project{ID: "p1", OwnerID: "u1", Members: []string{"u1"}}))
	require.NoError(t, repo.Create(ctx, &models.Project{ID: "p2", OwnerID: "u2", Members: []string{"u2", "u1"}}))
	require.NoError(t, repo.Create(ctx, &models.Project{ID: "p3", OwnerID: "u2", Members: []string{"u2"}}))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)

	require.NoError(t, repo.Delete(ctx, "p1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), repositories.ErrNotFound)

	exists, err := repo.Exists(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.Mutate(ctx, "p1", func(*models.Project) error { return nil })
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProjectRepositoryMutate(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository()
	require.NoError(t, repo.Create(ctx, &models.Project{ID: "p1", Name: "P1", OwnerID: "u1", Members: []string{"u1"}}))

	got, err := repo.Mutate(ctx, "p1", func(p *models.Project) error {
		p.Members = append(p.Members, "u2")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)

	// the returned value is a copy
	got.Members[0] = "intruder"

	boom := errors.New("boom")
	_, err = repo.Mutate(ctx, "p1", func(p *models.Project) error {
		p.Name = "discarded"
		return boom
	})
	assert.Equal(t, boom, err)

	stored, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "P1", stored.Name)
	assert.Equal(t, []string{"u1", "u2"}, stored.Members)
}

func TestTaskRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepository()
	u1 := "u1"

	require.NoError(t, repo.Create(ctx, &models.Task{ID: "t1", ProjectID: "p1", AssignedTo: &u1}))
	require.NoError(t, repo.Create(ctx, &models.Task{ID: "t2", ProjectID: "p2"}))
	require.NoError(t, repo.Create(ctx, &models.Task{ID: "t3", ProjectID: "p3", AssignedTo: &u1}))

	byProject, err := repo.ListByProject(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, "t2", byProject[0].ID)

	byProjects, err := repo.ListByProjects(ctx, []string{"p3", "p1"})
	require.NoError(t, err)
	require.Len(t, byProjects, 2)
	assert.Equal(t, "t1", byProjects[0].ID)
	assert.Equal(t, "t3", byProjects[1].ID)

	mine, err := repo.ListByAssignee(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// the stored assignee is not shared with the caller
	*mine[0].AssignedTo = "u9"
	stored, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", *stored.AssignedTo)

	none, err := repo.ListByProjects(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCommentRepositoryUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c1", TaskID: "t1", Content: "a", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c2", TaskID: "t2", Content: "b", CreatedAt: now}))

	c, err := repo.Mutate(ctx, "c1", func(c *models.Comment) error {
		c.Content = "edited"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Content)

	list, err := repo.ListByTasks(ctx, []string{"t1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "edited", list[0].Content)

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepositoryExactEmailMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "Alice@example.com"}))

	_, err := repo.GetByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	u, err := repo.GetByEmail(ctx, "Alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &models.User{ID: "u1", Email: "alice@example.com"}))

	err := repo.Create(ctx, &models.User{ID: "u2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRepositoriesAreSafeForConcurrentUse(t *testing.T) {
	ctx := context.Background()
	projects := NewProjectRepository()
	tasks := NewTaskRepository()
	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p1", OwnerID: "u0", Members: []string{"u0"}}))

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			id := fmt.Sprintf("m%d", i)
			_, _ = projects.Mutate(ctx, "p1", func(p *models.Project) error {
				p.Members = append(p.Members, id)
				return nil
			})
			_ = tasks.Create(ctx, &models.Task{ID: "t-" + id, ProjectID: "p1"})
			_, _ = tasks.Mutate(ctx, "t-"+id, func(task *models.Task) error {
				task.Status = models.TaskStatusDone
				return nil
			})
			_, _ = tasks.ListByProject(ctx, "p1")
		}(i)
	}
	close(start)
	wg.Wait()

	p, err := projects.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p.Members, 51)

	count, err := tasks.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, count)
}
