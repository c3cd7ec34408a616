package schedule

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTaskFile(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "tasks.yml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestParser_List(t *testing.T) {
	file := writeTaskFile(t, `
tasks:
  - name: "nightly full sync"
    task: bulk-sync
    spec: "0 2 * * *"
    repeater:
      attempts: 3
      duration: "5s"
      factor: 2.0
      jitter: true
    conditions:
      cpu_below: 80
      max_postpone: "30m"
      check_interval: "1m"

  - task: collect-metrics
    spec: "@every 5m"
    history_hours: 24

  - task: cleanup
    spec: "@daily"
`)

	p := New(file, time.Minute)
	tasks, err := p.List()
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, "nightly full sync", tasks[0].DisplayName())
	assert.Equal(t, KindBulkSync, tasks[0].Kind)
	assert.Equal(t, "0 2 * * *", tasks[0].Spec)
	require.NotNil(t, tasks[0].Repeater)
	require.NotNil(t, tasks[0].Repeater.Attempts)
	assert.Equal(t, 3, *tasks[0].Repeater.Attempts)
	require.NotNil(t, tasks[0].Repeater.Duration)
	assert.Equal(t, 5*time.Second, *tasks[0].Repeater.Duration)
	require.NotNil(t, tasks[0].Conditions)
	require.NotNil(t, tasks[0].Conditions.MaxPostpone)
	assert.Equal(t, 30*time.Minute, *tasks[0].Conditions.MaxPostpone)

	assert.Equal(t, KindCollectMetrics, tasks[1].Kind)
	assert.Equal(t, "collect-metrics", tasks[1].DisplayName())
	assert.Equal(t, 24, tasks[1].HistoryHours)
	assert.Nil(t, tasks[1].Repeater)

	assert.Equal(t, "@daily", tasks[2].Spec)
}

func TestParser_ListErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     string
	}{
		{name: "no tasks", content: "tasks: []", err: "at least one task"},
		{name: "missing kind", content: "tasks:\n  - spec: \"@daily\"", err: "'task' field is required"},
		{name: "unknown kind", content: "tasks:\n  - task: reboot\n    spec: \"@daily\"", err: "unknown task kind"},
		{name: "missing spec", content: "tasks:\n  - task: cleanup", err: "'spec' field is required"},
		{name: "bad spec", content: "tasks:\n  - task: cleanup\n    spec: \"not a spec\"", err: "invalid spec"},
		{name: "bad duration", content: "tasks:\n  - task: bulk-sync\n    spec: \"@daily\"\n    repeater:\n      duration: \"fast\"", err: "invalid repeater duration"},
		{name: "attempts out of range", content: "tasks:\n  - task: bulk-sync\n    spec: \"@daily\"\n    repeater:\n      attempts: 500", err: "attempts must be between"},
		{name: "bad cpu threshold", content: "tasks:\n  - task: bulk-sync\n    spec: \"@daily\"\n    conditions:\n      cpu_below: 150", err: "cpu_below must be between"},
		{name: "history on wrong kind", content: "tasks:\n  - task: cleanup\n    spec: \"@daily\"\n    history_hours: 4", err: "history_hours only makes sense"},
		{name: "not yaml", content: "{{{", err: "can't parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(writeTaskFile(t, tt.content), time.Minute)
			_, err := p.List()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestParser_ListMissingFile(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "nope.yml"), time.Minute)
	_, err := p.List()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParser_Changes(t *testing.T) {
	file := writeTaskFile(t, "tasks:\n  - task: cleanup\n    spec: \"@daily\"\n")
	p := New(file, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := p.Changes(ctx)
	require.NoError(t, err)

	// wait past the debounce window, then update the file
	time.Sleep(100 * time.Millisecond)
	content := "tasks:\n  - task: cleanup\n    spec: \"@daily\"\n  - task: bulk-sync\n    spec: \"@hourly\"\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	select {
	case tasks := <-ch:
		require.Len(t, tasks, 2)
		assert.Equal(t, KindBulkSync, tasks[1].Kind)
	case <-ctx.Done():
		t.Fatal("timed out waiting for update")
	}

	cancel()
	// channel closes on context cancellation
	for range ch { //nolint:revive // drain until closed
	}
}

func TestParser_ChangesMissingFile(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "nope.yml"), time.Minute)
	_, err := p.Changes(context.Background())
	require.Error(t, err)
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}
