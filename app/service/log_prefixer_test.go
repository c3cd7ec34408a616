package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPrefixer_Write(t *testing.T) {
	out := bytes.NewBuffer(nil)
	prefixer := NewLogPrefixer(out, "nightly inventory sync")

	n, err := prefixer.Write([]byte("first line of the output\n"))
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	n, err = prefixer.Write([]byte("second line of the output\n"))
	require.NoError(t, err)
	assert.Equal(t, 26, n)

	expectedOutput :=
		"{nightly inventor...} first line of the output\n" +
			"{nightly inventor...} second line of the output\n"
	assert.Equal(t, expectedOutput, out.String())
}

func TestLogPrefixer_prefixForTask(t *testing.T) {
	prefixer := &LogPrefixer{}

	assert.Equal(t, []byte("{bulk-sync} "), prefixer.prefixForTask("bulk-sync"))
	assert.Equal(t, []byte("{collect-metrics} "), prefixer.prefixForTask("collect-metrics"))
	assert.Equal(t, []byte("{nightly inventor...} "), prefixer.prefixForTask("nightly inventory sync"))
}
