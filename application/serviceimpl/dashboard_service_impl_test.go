package serviceimpl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
)

type dashboardFixture struct {
	*fixture
	alice, bob, carol string
	p1, p2, p3        string
	tasks             map[string]string
}

// newDashboardFixture builds three projects with seven tasks:
// Alice owns P1 (Bob member) and P2, Bob owns P3 (Alice member).
// Carol owns an unrelated project that must never show up.
func newDashboardFixture(t *testing.T) *dashboardFixture {
	f := &dashboardFixture{fixture: newFixture(t), tasks: map[string]string{}}
	f.alice = f.register(t, "alice")
	f.bob = f.register(t, "bob")
	f.carol = f.register(t, "carol")

	f.p1 = f.project(t, f.alice, "P1", f.bob)
	f.p2 = f.project(t, f.alice, "P2")
	f.p3 = f.project(t, f.bob, "P3", f.alice)
	other := f.project(t, f.carol, "Carol's")
	f.task(t, f.carol, other, "unrelated", f.carol)

	f.tasks["t1"] = f.task(t, f.alice, f.p1, "t1", f.alice)
	f.tasks["t2"] = f.task(t, f.alice, f.p1, "t2", f.alice)
	f.tasks["t3"] = f.task(t, f.alice, f.p1, "t3", f.bob)
	f.tasks["t4"] = f.task(t, f.alice, f.p2, "t4", f.alice)
	f.tasks["t5"] = f.task(t, f.alice, f.p2, "t5", "")
	f.tasks["t6"] = f.task(t, f.bob, f.p3, "t6", f.alice)
	f.tasks["t7"] = f.task(t, f.bob, f.p3, "t7", f.bob)

	f.setStatus(t, f.alice, f.tasks["t2"], "IN_PROGRESS")
	f.setStatus(t, f.bob, f.tasks["t3"], "DONE")
	f.setStatus(t, f.alice, f.tasks["t4"], "DONE")
	f.setStatus(t, f.bob, f.tasks["t7"], "IN_PROGRESS")
	return f
}

func (f *dashboardFixture) comment(t *testing.T, userID, task string) {
	t.Helper()
	_, err := f.comments.CreateComment(f.ctx, userID, &dto.CreateCommentRequest{TaskID: f.tasks[task], Content: "note"})
	require.NoError(t, err)
}

func TestDashboardStatsForAlice(t *testing.T) {
	f := newDashboardFixture(t)
	f.comment(t, f.alice, "t1")
	f.comment(t, f.alice, "t6")
	f.comment(t, f.bob, "t7")

	stats, err := f.dashboard.GetStats(f.ctx, f.alice)
	require.NoError(t, err)

	assert.Equal(t, dto.TaskStats{Total: 4, Todo: 2, InProgress: 1, Done: 1}, stats.TaskStats)
	assert.Equal(t, dto.ProjectStats{Total: 3, Owned: 2, Member: 1}, stats.ProjectStats)
	assert.Equal(t, dto.CommentStats{TotalComments: 3, MyComments: 2}, stats.CommentStats)

	require.Len(t, stats.RecentActivity, 7)
	// last four mutations were status changes, newest first
	want := []string{"t7", "t4", "t3", "t2", "t6", "t5", "t1"}
	for i, name := range want {
		assert.Equal(t, f.tasks[name], stats.RecentActivity[i].ID, "position %d", i)
	}

	t7 := stats.RecentActivity[0]
	assert.Equal(t, models.TaskStatusInProgress, t7.Status)
	assert.Equal(t, &dto.ProjectRef{ID: f.p3, Name: "P3"}, t7.Project)
	assert.Equal(t, &dto.UserSummary{ID: f.bob, FirstName: "bob", LastName: "Tester"}, t7.Assignee)

	assert.Nil(t, stats.RecentActivity[5].Assignee)
}

func TestDashboardStatsForBob(t *testing.T) {
	f := newDashboardFixture(t)

	stats, err := f.dashboard.GetStats(f.ctx, f.bob)
	require.NoError(t, err)

	assert.Equal(t, dto.TaskStats{Total: 2, Todo: 0, InProgress: 1, Done: 1}, stats.TaskStats)
	assert.Equal(t, dto.ProjectStats{Total: 2, Owned: 1, Member: 1}, stats.ProjectStats)
	// t1..t3 and t6..t7
	assert.Len(t, stats.RecentActivity, 5)
}

func TestDashboardRecentActivityKeepsTen(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	p := f.project(t, alice, "P1")
	for i := 0; i < 12; i++ {
		f.task(t, alice, p, fmt.Sprintf("task %d", i), "")
	}

	stats, err := f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	require.Len(t, stats.RecentActivity, 10)
	assert.Equal(t, "task 11", stats.RecentActivity[0].Title)
	assert.Equal(t, "task 2", stats.RecentActivity[9].Title)
}

func TestDashboardEmptyUser(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")

	stats, err := f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardStats{RecentActivity: []dto.RecentActivity{}}, *stats)

	overview, err := f.dashboard.GetProjectOverview(f.ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, overview)
}

func TestProjectOverview(t *testing.T) {
	f := newDashboardFixture(t)

	overview, err := f.dashboard.GetProjectOverview(f.ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, overview, 3)

	assert.Equal(t, f.p1, overview[0].ID)
	assert.True(t, overview[0].IsOwner)
	assert.Equal(t, 2, overview[0].MemberCount)
	assert.Equal(t, dto.TaskStats{Total: 3, Todo: 1, InProgress: 1, Done: 1}, overview[0].TaskStats)

	assert.Equal(t, dto.TaskStats{Total: 2, Todo: 1, Done: 1}, overview[1].TaskStats)
	assert.Equal(t, 1, overview[1].MemberCount)

	assert.Equal(t, "P3", overview[2].Name)
	assert.False(t, overview[2].IsOwner)
	assert.Equal(t, dto.TaskStats{Total: 2, Todo: 1, InProgress: 1}, overview[2].TaskStats)
}

func TestDashboardCacheIsInvalidatedByWrites(t *testing.T) {
	cache := newMapCache()
	f := newFixtureWithCache(t, cache)
	alice := f.register(t, "alice")
	p := f.project(t, alice, "P1")

	stats, err := f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, stats.TaskStats.Total)
	assert.Contains(t, cache.entries, "stats:"+alice)

	f.task(t, alice, p, "T1", alice)
	assert.NotContains(t, cache.entries, "stats:"+alice)

	stats, err = f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TaskStats.Total)

	cached, err := f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, stats.TaskStats, cached.TaskStats)
	assert.Equal(t, 2, cache.invalidations)
}

func TestDashboardStatsComputedBeforeAWriteAreNotCached(t *testing.T) {
	cache := newMapCache()
	f := newFixtureWithCache(t, cache)
	svc := f.dashboard.(*DashboardServiceImpl)
	alice := f.register(t, "alice")
	p := f.project(t, alice, "P1")

	stale, err := cached(f.ctx, svc, "stats:"+alice, func() (*dto.DashboardStats, error) {
		stats, err := svc.computeStats(f.ctx, alice)
		// the task lands after the read but before the result is stored
		f.task(t, alice, p, "T1", alice)
		return stats, err
	})
	require.NoError(t, err)
	assert.Zero(t, stale.TaskStats.Total)
	assert.NotContains(t, cache.entries, "stats:"+alice)

	stats, err := f.dashboard.GetStats(f.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TaskStats.Total)
}
