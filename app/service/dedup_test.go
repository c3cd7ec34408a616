package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeDup(t *testing.T) {
	d := NewDeDup(true)
	assert.True(t, d.Add("bulk-sync#@every 5m"), "passed, first time")
	assert.False(t, d.Add("bulk-sync#@every 5m"), "failed, dup")
	assert.True(t, d.Add("cleanup#@daily"), "passed, different task")
	d.Remove("bulk-sync#@every 5m")
	assert.True(t, d.Add("bulk-sync#@every 5m"), "passed, removed before")
	assert.False(t, d.Add("cleanup#@daily"), "failed, dup")
}

func TestDeDupDisabled(t *testing.T) {
	d := NewDeDup(false)
	assert.True(t, d.Add("bulk-sync#@every 5m"))
	assert.True(t, d.Add("bulk-sync#@every 5m"))
	d.Remove("bulk-sync#@every 5m")
	assert.True(t, d.Add("bulk-sync#@every 5m"), "passed, removed before")
	assert.True(t, d.Add("bulk-sync#@every 5m"))
	assert.True(t, d.Add("bulk-sync#@every 5m"))
}
