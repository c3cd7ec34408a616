package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepStore(t *testing.T) *Store {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestStore_EquipmentCRUD(t *testing.T) {
	s := prepStore(t)
	ctx := context.Background()

	id, err := s.CreateEquipment(ctx, Equipment{
		Name:              "core switch",
		Category:          "network",
		Hostname:          "sw-core-01",
		IPAddress:         "10.0.0.2",
		Manufacturer:      "cisco",
		Model:             "c9300",
		Location:          "server room",
		MonitoringEnabled: true,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	eq, err := s.GetEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "core switch", eq.Name)
	assert.Equal(t, "network", eq.Category)
	assert.True(t, eq.MonitoringEnabled)
	assert.Empty(t, eq.ZabbixHostID)
	assert.False(t, eq.CreatedAt.IsZero())

	eq.Notes = "uplink to dc2"
	eq.MonitoringEnabled = false
	require.NoError(t, s.UpdateEquipment(ctx, eq))

	updated, err := s.GetEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "uplink to dc2", updated.Notes)
	assert.False(t, updated.MonitoringEnabled)

	require.NoError(t, s.DeleteEquipment(ctx, id))
	_, err = s.GetEquipment(ctx, id)
	assert.Error(t, err)
}

func TestStore_UpdateMissing(t *testing.T) {
	s := prepStore(t)
	err := s.UpdateEquipment(context.Background(), Equipment{ID: 12345, Name: "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStore_ListMonitoredAndOrphaned(t *testing.T) {
	s := prepStore(t)
	ctx := context.Background()

	_, err := s.CreateEquipment(ctx, Equipment{Name: "printer", Category: "printer",
		IPAddress: "10.0.0.5", MonitoringEnabled: true})
	require.NoError(t, err)

	// enabled but no ip, should not be monitored
	_, err = s.CreateEquipment(ctx, Equipment{Name: "spare laptop", Category: "laptop", MonitoringEnabled: true})
	require.NoError(t, err)

	// disabled but still registered in zabbix, orphaned
	orphanID, err := s.CreateEquipment(ctx, Equipment{Name: "old server", Category: "server",
		IPAddress: "10.0.0.9", ZabbixHostID: "10444"})
	require.NoError(t, err)

	monitored, err := s.ListMonitored(ctx)
	require.NoError(t, err)
	require.Len(t, monitored, 1)
	assert.Equal(t, "printer", monitored[0].Name)

	orphaned, err := s.ListOrphaned(ctx)
	require.NoError(t, err)
	require.Len(t, orphaned, 1)
	assert.Equal(t, "old server", orphaned[0].Name)

	// clearing the host id makes it a regular disabled record
	require.NoError(t, s.ClearHostID(ctx, orphanID))
	orphaned, err = s.ListOrphaned(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}

func TestStore_SetAndClearHostID(t *testing.T) {
	s := prepStore(t)
	ctx := context.Background()

	id, err := s.CreateEquipment(ctx, Equipment{Name: "ups", Category: "ups",
		IPAddress: "10.0.0.7", MonitoringEnabled: true})
	require.NoError(t, err)

	require.NoError(t, s.SetHostID(ctx, id, "10333"))
	eq, err := s.GetEquipment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "10333", eq.ZabbixHostID)

	require.NoError(t, s.ClearHostID(ctx, id))
	eq, err = s.GetEquipment(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, eq.ZabbixHostID)
}

func TestStore_Runs(t *testing.T) {
	s := prepStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordRun(ctx, Run{
			Task:         "bulk-sync",
			StartedAt:    base.Add(time.Duration(i) * time.Minute),
			FinishedAt:   base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			Status:       "ok",
			SuccessCount: i + 1,
		}))
	}
	require.NoError(t, s.RecordRun(ctx, Run{
		Task:       "collect-metrics",
		StartedAt:  base.Add(10 * time.Minute),
		FinishedAt: base.Add(11 * time.Minute),
		Status:     "failed",
		ErrorCount: 2,
		Details:    "zabbix api unreachable",
	}))

	runs, err := s.LastRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "collect-metrics", runs[0].Task)
	assert.Equal(t, "failed", runs[0].Status)
	assert.Equal(t, "bulk-sync", runs[1].Task)

	all, err := s.LastRuns(ctx, 0) // default limit
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
