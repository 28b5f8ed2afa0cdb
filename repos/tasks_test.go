package repos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manager/pkg/store"
	"manager/repos"
)

func TestCreateTaskValidation(t *testing.T) {
	tasks := repos.NewTasks(store.OpenVolatile())
	var ve *repos.ValidationError

	_, err := tasks.Create(context.Background(), repos.CreateTaskInput{AssignedTo: "alice"})
	require.ErrorAs(t, err, &ve)

	_, err = tasks.Create(context.Background(), repos.CreateTaskInput{Title: "job"})
	require.ErrorAs(t, err, &ve)
}

func TestCreateTaskDefaults(t *testing.T) {
	tasks := repos.NewTasks(store.OpenVolatile())

	task, err := tasks.Create(context.Background(), repos.CreateTaskInput{Title: "job", AssignedTo: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.Done)
}

func TestListTasksFilterByUser(t *testing.T) {
	tasks := repos.NewTasks(store.OpenVolatile())
	for _, user := range []string{"alice", "bob", "alice"} {
		_, err := tasks.Create(context.Background(), repos.CreateTaskInput{Title: "job", AssignedTo: user})
		require.NoError(t, err)
	}

	all, err := tasks.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := tasks.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, task := range mine {
		assert.Equal(t, "alice", task.AssignedTo)
	}
}

func TestToggleTaskBothWays(t *testing.T) {
	tasks := repos.NewTasks(store.OpenVolatile())
	task, err := tasks.Create(context.Background(), repos.CreateTaskInput{Title: "job", AssignedTo: "alice"})
	require.NoError(t, err)

	task, err = tasks.ToggleDone(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, task.Done)

	task, err = tasks.ToggleDone(context.Background(), task.ID)
	require.NoError(t, err)
	assert.False(t, task.Done)
}
