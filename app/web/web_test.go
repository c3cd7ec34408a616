package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/service"
	"github.com/parcinfo/zbxlink/app/store"
	syncer "github.com/parcinfo/zbxlink/app/sync"
	"github.com/parcinfo/zbxlink/app/web/mocks"
)

func testServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.TaskProvider == nil {
		cfg.TaskProvider = &mocks.TaskProviderMock{
			ListFunc: func() ([]schedule.Task, error) { return nil, nil },
		}
	}
	if cfg.Runs == nil {
		cfg.Runs = &mocks.RunStoreMock{
			LastRunsFunc: func(ctx context.Context, limit int) ([]store.Run, error) { return nil, nil },
		}
	}
	srv, err := New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestNew_MissingDeps(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TaskProvider is required")

	_, err = New(Config{TaskProvider: &mocks.TaskProviderMock{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RunStore is required")
}

func TestServer_Ping(t *testing.T) {
	ts := testServer(t, Config{Version: "v1.0"})
	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Status(t *testing.T) {
	zbx := &mocks.ZabbixStatusMock{
		TestConnectionFunc: func(ctx context.Context) (string, error) { return "7.0.0", nil },
	}
	ts := testServer(t, Config{Version: "v1.0", Hostname: "host1", Zabbix: zbx})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "v1.0", status.Version)
	assert.Equal(t, "host1", status.Hostname)
	assert.True(t, status.Zabbix.OK)
	assert.Equal(t, "7.0.0", status.Zabbix.Version)
	assert.Equal(t, 1, len(zbx.TestConnectionCalls()))
}

func TestServer_StatusZabbixDown(t *testing.T) {
	zbx := &mocks.ZabbixStatusMock{
		TestConnectionFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	ts := testServer(t, Config{Zabbix: zbx})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.False(t, status.Zabbix.OK)
	assert.Contains(t, status.Zabbix.Error, "connection refused")
}

func TestServer_Tasks(t *testing.T) {
	provider := &mocks.TaskProviderMock{
		ListFunc: func() ([]schedule.Task, error) {
			return []schedule.Task{
				{Name: "nightly", Kind: schedule.KindBulkSync, Spec: "@every 10m"},
				{Kind: schedule.KindCollectMetrics, Spec: "@every 1m", HistoryHours: 6},
			}, nil
		},
	}
	runs := &mocks.RunStoreMock{
		LastRunsFunc: func(ctx context.Context, limit int) ([]store.Run, error) {
			return []store.Run{
				{Task: "bulk-sync", Status: "ok", FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
				{Task: "bulk-sync", Status: "failed", FinishedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)},
			}, nil
		},
	}
	ts := testServer(t, Config{TaskProvider: provider, Runs: runs})

	resp, err := http.Get(ts.URL + "/api/v1/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks TasksResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
	require.Equal(t, 2, len(tasks.Tasks))

	assert.Equal(t, "nightly", tasks.Tasks[0].Name)
	assert.Equal(t, "bulk-sync", tasks.Tasks[0].Kind)
	assert.False(t, tasks.Tasks[0].NextRun.IsZero(), "next run computed from spec")
	assert.Equal(t, "ok", tasks.Tasks[0].LastStatus, "newest run wins")
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), tasks.Tasks[0].LastRun)

	assert.Equal(t, "collect-metrics", tasks.Tasks[1].Kind)
	assert.Equal(t, 6, tasks.Tasks[1].HistoryHours)
	assert.Empty(t, tasks.Tasks[1].LastStatus)
}

func TestServer_TasksError(t *testing.T) {
	provider := &mocks.TaskProviderMock{
		ListFunc: func() ([]schedule.Task, error) { return nil, errors.New("parse failed") },
	}
	ts := testServer(t, Config{TaskProvider: provider})

	resp, err := http.Get(ts.URL + "/api/v1/tasks")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_Runs(t *testing.T) {
	runs := &mocks.RunStoreMock{
		LastRunsFunc: func(ctx context.Context, limit int) ([]store.Run, error) {
			assert.Equal(t, 10, limit)
			return []store.Run{{Task: "bulk-sync", Status: "ok", SuccessCount: 3}}, nil
		},
	}
	ts := testServer(t, Config{Runs: runs})

	resp, err := http.Get(ts.URL + "/api/v1/runs?limit=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rr RunsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rr))
	require.Equal(t, 1, len(rr.Runs))
	assert.Equal(t, "bulk-sync", rr.Runs[0].Task)
	assert.Equal(t, 3, rr.Runs[0].SuccessCount)
}

func TestServer_RunsBadLimit(t *testing.T) {
	ts := testServer(t, Config{})

	for _, v := range []string{"abc", "-1", "0", "100000"} {
		resp, err := http.Get(ts.URL + "/api/v1/runs?limit=" + v)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "limit %q rejected", v)
	}
}

func TestServer_Snapshot(t *testing.T) {
	snapshots := &mocks.SnapshotProviderMock{
		GetSnapshotFunc: func(equipmentID int64) (syncer.Snapshot, bool) {
			if equipmentID != 42 {
				return syncer.Snapshot{}, false
			}
			return syncer.Snapshot{
				Equipment: store.Equipment{ID: 42, Name: "srv1"},
				Collected: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			}, true
		},
	}
	ts := testServer(t, Config{Snapshots: snapshots})

	resp, err := http.Get(ts.URL + "/api/v1/snapshots/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap syncer.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "srv1", snap.Equipment.Name)
	assert.Equal(t, 1, len(snapshots.GetSnapshotCalls()))

	t.Run("not collected yet", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/snapshots/7")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/snapshots/abc")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("disabled", func(t *testing.T) {
		ts2 := testServer(t, Config{})
		resp, err := http.Get(ts2.URL + "/api/v1/snapshots/42")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestServer_ManualSync(t *testing.T) {
	trigger := make(chan service.ManualTaskRequest, 1)
	ts := testServer(t, Config{ManualTrigger: trigger})

	body := bytes.NewBufferString(`{"task":"collect-metrics","history_hours":12}`)
	resp, err := http.Post(ts.URL+"/api/v1/sync", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case req := <-trigger:
		assert.Equal(t, "collect-metrics", req.Kind)
		assert.Equal(t, 12, req.HistoryHours)
	default:
		t.Fatal("expected trigger request in channel")
	}
}

func TestServer_ManualSyncDefaultsToBulk(t *testing.T) {
	trigger := make(chan service.ManualTaskRequest, 1)
	ts := testServer(t, Config{ManualTrigger: trigger})

	resp, err := http.Post(ts.URL+"/api/v1/sync", "application/json", http.NoBody)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	req := <-trigger
	assert.Equal(t, "bulk-sync", req.Kind)
}

func TestServer_ManualSyncRejected(t *testing.T) {
	t.Run("unknown task", func(t *testing.T) {
		trigger := make(chan service.ManualTaskRequest, 1)
		ts := testServer(t, Config{ManualTrigger: trigger})

		body := bytes.NewBufferString(`{"task":"drop-tables"}`)
		resp, err := http.Post(ts.URL+"/api/v1/sync", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no trigger channel", func(t *testing.T) {
		ts := testServer(t, Config{})
		resp, err := http.Post(ts.URL+"/api/v1/sync", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("queue full", func(t *testing.T) {
		trigger := make(chan service.ManualTaskRequest) // unbuffered, nobody reads
		ts := testServer(t, Config{ManualTrigger: trigger})
		resp, err := http.Post(ts.URL+"/api/v1/sync", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestServer_Run(t *testing.T) {
	srv, err := New(Config{
		TaskProvider: &mocks.TaskProviderMock{ListFunc: func() ([]schedule.Task, error) { return nil, nil }},
		Runs: &mocks.RunStoreMock{
			LastRunsFunc: func(ctx context.Context, limit int) ([]store.Run, error) { return nil, nil },
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	done := make(chan error)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
