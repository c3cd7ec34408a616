package setup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "parcInfoCP"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parcInfoCP", "settings.py"),
		[]byte("DEBUG = True\n"), 0o600))
	return dir
}

func TestInstaller_Run(t *testing.T) {
	dir := prepProject(t)
	out := bytes.NewBuffer(nil)

	inst := Installer{ProjectPath: dir, ServerIP: "192.168.1.50", SkipPip: true, Out: out}
	err := inst.Run(context.Background())
	require.NoError(t, err)

	for _, d := range []string{"logs", "media", "staticfiles"} {
		fi, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s created", d)
		assert.True(t, fi.IsDir())
	}

	data, err := os.ReadFile(filepath.Join(dir, "parcInfoCP", "settings.py"))
	require.NoError(t, err)
	settings := string(data)
	assert.Contains(t, settings, "DEBUG = True", "original content preserved")
	assert.Contains(t, settings, "'URL': 'http://192.168.1.50/zabbix/api_jsonrpc.php'")
	assert.Contains(t, settings, "CELERY_BROKER_URL = 'redis://192.168.1.50:6379/0'")
	assert.Contains(t, settings, "CELERY_RESULT_BACKEND = 'redis://192.168.1.50:6379/0'")
	assert.Contains(t, settings, "'task': 'assets.tasks.bulk_sync_monitoring'")
	assert.Contains(t, settings, "LOGGING = {")

	assert.Contains(t, out.String(), "Setup complete")
	assert.Contains(t, out.String(), "192.168.1.50")
}

func TestInstaller_RunBadPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-project")

	inst := Installer{ProjectPath: missing, ServerIP: "10.0.0.1", SkipPip: true, Out: bytes.NewBuffer(nil)}
	err := inst.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "nothing created on failed check")
}

func TestInstaller_RunPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.py")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	inst := Installer{ProjectPath: file, ServerIP: "10.0.0.1", SkipPip: true, Out: bytes.NewBuffer(nil)}
	err := inst.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestInstaller_RunTwiceAppendsTwice(t *testing.T) {
	dir := prepProject(t)

	inst := Installer{ProjectPath: dir, ServerIP: "10.1.2.3", SkipPip: true, Out: bytes.NewBuffer(nil)}
	require.NoError(t, inst.Run(context.Background()))
	require.NoError(t, inst.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "parcInfoCP", "settings.py"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), blockMarker), "re-run appends a second copy")
	assert.Equal(t, 2, strings.Count(string(data), "CELERY_BROKER_URL"))
}

func TestInstaller_RunPrompts(t *testing.T) {
	dir := prepProject(t)
	in := strings.NewReader(dir + "\n172.16.0.9\n")
	out := bytes.NewBuffer(nil)

	inst := Installer{SkipPip: true, In: in, Out: out}
	err := inst.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Enter the full path to your Django project:")
	assert.Contains(t, out.String(), "Enter the Zabbix server IP:")

	data, err := os.ReadFile(filepath.Join(dir, "parcInfoCP", "settings.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "redis://172.16.0.9:6379/0")
}

func TestInstaller_PipFailureContinues(t *testing.T) {
	dir := prepProject(t)

	// no requirements.txt in the project, pip install fails but the run completes
	inst := Installer{ProjectPath: dir, ServerIP: "10.0.0.5", Out: bytes.NewBuffer(nil)}
	err := inst.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "parcInfoCP", "settings.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), blockMarker, "settings appended despite pip failure")
}

func TestInstaller_FindVenv(t *testing.T) {
	t.Run("venv preferred", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "venv", "bin"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "venv", "bin", "activate"), []byte("#"), 0o600))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".venv", "bin"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".venv", "bin", "activate"), []byte("#"), 0o600))

		inst := Installer{ProjectPath: dir}
		assert.Equal(t, filepath.Join(dir, "venv", "bin", "activate"), inst.findVenv())
	})

	t.Run("dot venv fallback", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".venv", "bin"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".venv", "bin", "activate"), []byte("#"), 0o600))

		inst := Installer{ProjectPath: dir}
		assert.Equal(t, filepath.Join(dir, ".venv", "bin", "activate"), inst.findVenv())
	})

	t.Run("none found", func(t *testing.T) {
		inst := Installer{ProjectPath: t.TempDir()}
		assert.Empty(t, inst.findVenv())
	})
}

func TestInstaller_SettingsFileCreatedIfMissing(t *testing.T) {
	dir := t.TempDir() // no parcInfoCP dir, custom settings path at project root

	inst := Installer{ProjectPath: dir, ServerIP: "10.0.0.7", SettingsFile: "settings.py",
		SkipPip: true, Out: bytes.NewBuffer(nil)}
	require.NoError(t, inst.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "settings.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://10.0.0.7/zabbix/api_jsonrpc.php")
}
