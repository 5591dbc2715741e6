package serviceimpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/domain/dto"
	"taskmaster/pkg/apperror"
)

func TestCreateProjectOwnerIsSoleMember(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	p, err := f.projects.CreateProject(f.ctx, alice, &dto.CreateProjectRequest{Name: "Website Redesign"})
	require.NoError(t, err)
	assert.Equal(t, alice, p.OwnerID)
	assert.Equal(t, []string{alice}, p.Members)
	assert.Equal(t, "website-redesign", p.Slug)
	assert.Equal(t, "", p.Description)

	_, err = f.projects.CreateProject(f.ctx, alice, &dto.CreateProjectRequest{})
	requireKind(t, err, apperror.KindValidation)
}

func TestGetProjectRequiresOwnerOrMember(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")
	p := f.project(t, alice, "P1", bob)

	for _, user := range []string{alice, bob} {
		_, err := f.projects.GetProject(f.ctx, p, user)
		assert.NoError(t, err)
	}

	_, err := f.projects.GetProject(f.ctx, p, carol)
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.projects.GetProject(f.ctx, "missing", alice)
	requireKind(t, err, apperror.KindNotFound)
}

func TestListProjectsInCreationOrder(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	p1 := f.project(t, alice, "P1")
	f.project(t, bob, "Bob only")
	p3 := f.project(t, bob, "P3", alice)

	projects, err := f.projects.ListProjects(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, p1, projects[0].ID)
	assert.Equal(t, p3, projects[1].ID)
}

func TestUpdateProjectPatch(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	created, err := f.projects.CreateProject(f.ctx, alice, &dto.CreateProjectRequest{Name: "P1", Description: "first"})
	require.NoError(t, err)
	_, err = f.projects.AddMember(f.ctx, created.ID, alice, bob)
	require.NoError(t, err)

	_, err = f.projects.UpdateProject(f.ctx, created.ID, bob, &dto.UpdateProjectRequest{Name: "Hijack"})
	requireKind(t, err, apperror.KindForbidden)

	f.clock.Advance(1)
	empty := ""
	updated, err := f.projects.UpdateProject(f.ctx, created.ID, alice, &dto.UpdateProjectRequest{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "P1", updated.Name)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	updated, err = f.projects.UpdateProject(f.ctx, created.ID, alice, &dto.UpdateProjectRequest{Name: "Renamed Project"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Project", updated.Name)
	assert.Equal(t, "renamed-project", updated.Slug)
}

func TestAddMemberChecks(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.project(t, alice, "P1")

	_, err := f.projects.AddMember(f.ctx, "missing", alice, bob)
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.projects.AddMember(f.ctx, p, bob, bob)
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.projects.AddMember(f.ctx, p, alice, "")
	requireKind(t, err, apperror.KindValidation)

	_, err = f.projects.AddMember(f.ctx, p, alice, "ghost")
	requireKind(t, err, apperror.KindNotFound)

	project, err := f.projects.AddMember(f.ctx, p, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{alice, bob}, project.Members)

	_, err = f.projects.AddMember(f.ctx, p, alice, bob)
	requireKind(t, err, apperror.KindConflict)
	assert.Equal(t, 400, apperror.KindConflict.Status())
}

func TestRemoveMember(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")
	p := f.project(t, alice, "P1", bob)

	_, err := f.projects.RemoveMember(f.ctx, p, bob, alice)
	requireKind(t, err, apperror.KindForbidden)

	_, err = f.projects.RemoveMember(f.ctx, p, alice, alice)
	requireKind(t, err, apperror.KindValidation)

	_, err = f.projects.RemoveMember(f.ctx, p, alice, carol)
	requireKind(t, err, apperror.KindNotFound)

	project, err := f.projects.RemoveMember(f.ctx, p, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{alice}, project.Members)

	_, err = f.projects.GetProject(f.ctx, p, bob)
	requireKind(t, err, apperror.KindForbidden)
}

func TestDeleteProjectOwnerOnlyWithoutCascade(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	p := f.project(t, alice, "P1", bob)
	taskID := f.task(t, alice, p, "T1", bob)

	err := f.projects.DeleteProject(f.ctx, p, bob)
	requireKind(t, err, apperror.KindForbidden)

	require.NoError(t, f.projects.DeleteProject(f.ctx, p, alice))

	_, err = f.projects.GetProject(f.ctx, p, alice)
	requireKind(t, err, apperror.KindNotFound)

	// the task survives its project
	_, err = f.taskRepo.GetByID(f.ctx, taskID)
	require.NoError(t, err)

	_, err = f.tasks.GetTask(f.ctx, taskID, alice)
	requireKind(t, err, apperror.KindNotFound)

	mine, err := f.tasks.ListMyTasks(f.ctx, bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].Project)
}
