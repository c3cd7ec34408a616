package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parcinfo/zbxlink/app/schedule"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestChecker_NoConditions(t *testing.T) {
	checker := &Checker{}
	ok, reason := checker.Check(schedule.ConditionsConfig{})
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestChecker_CPU(t *testing.T) {
	checker := &Checker{}

	// real CPU data, should pass with a high threshold
	ok, reason := checker.Check(schedule.ConditionsConfig{CPUBelow: intPtr(99)})
	assert.True(t, ok)
	assert.Empty(t, reason)

	// very low threshold, bound to fail
	ok, reason = checker.Check(schedule.ConditionsConfig{CPUBelow: intPtr(0)})
	assert.False(t, ok)
	assert.Contains(t, reason, "CPU at")
}

func TestChecker_Memory(t *testing.T) {
	checker := &Checker{}

	ok, reason := checker.Check(schedule.ConditionsConfig{MemoryBelow: intPtr(99)})
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = checker.Check(schedule.ConditionsConfig{MemoryBelow: intPtr(0)})
	assert.False(t, ok)
	assert.Contains(t, reason, "memory at")
}

func TestChecker_LoadAvg(t *testing.T) {
	checker := &Checker{}

	ok, reason := checker.Check(schedule.ConditionsConfig{LoadAvgBelow: floatPtr(1000.0)})
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = checker.Check(schedule.ConditionsConfig{LoadAvgBelow: floatPtr(0.0)})
	assert.False(t, ok)
	assert.Contains(t, reason, "load at")
}

func TestChecker_DiskFree(t *testing.T) {
	checker := &Checker{}

	ok, reason := checker.Check(schedule.ConditionsConfig{DiskFreeAbove: intPtr(1)})
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = checker.Check(schedule.ConditionsConfig{DiskFreeAbove: intPtr(100)})
	assert.False(t, ok)
	assert.Contains(t, reason, "disk free at")

	badPath := "/non/existent/path"
	ok, reason = checker.Check(schedule.ConditionsConfig{DiskFreeAbove: intPtr(10), DiskFreePath: badPath})
	assert.False(t, ok)
	assert.Contains(t, reason, "failed to get disk usage")
}

func TestChecker_Custom(t *testing.T) {
	checker := &Checker{}

	ok, reason := checker.Check(schedule.ConditionsConfig{Custom: "true"})
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = checker.Check(schedule.ConditionsConfig{Custom: "false"})
	assert.False(t, ok)
	assert.Contains(t, reason, "custom check failed")
}

func TestChecker_FirstFailureWins(t *testing.T) {
	checker := &Checker{}
	ok, reason := checker.Check(schedule.ConditionsConfig{
		CPUBelow: intPtr(0), // fails first
		Custom:   "false",
	})
	assert.False(t, ok)
	assert.Contains(t, reason, "CPU at")
}
