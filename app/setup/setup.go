// Package setup scaffolds an existing Django project for Zabbix monitoring:
// creates the runtime directories, installs python requirements and appends
// the monitoring settings block to the project settings file.
package setup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	log "github.com/go-pkgz/lgr"
)

// blockMarker opens the appended settings block. Used to detect prior runs.
const blockMarker = "# --- zabbix monitoring settings (added by zbxlink setup) ---"

// runtime directories created inside the project
var projectDirs = []string{"logs", "media", "staticfiles"}

// virtualenv activate scripts probed in order
var venvActivates = []string{"venv/bin/activate", ".venv/bin/activate"}

// Installer runs the one-shot project setup
type Installer struct {
	ProjectPath  string
	ServerIP     string
	SettingsFile string // relative to project, defaults to parcInfoCP/settings.py
	Requirements string // relative to project, defaults to requirements.txt
	SkipPip      bool   // skip pip install step

	In  io.Reader // prompt input, defaults to os.Stdin
	Out io.Writer // prompt and checklist output, defaults to os.Stdout
}

// Run executes all setup steps in order. The project path check is the only
// fatal one, everything after it is best effort.
func (i *Installer) Run(ctx context.Context) error {
	if i.In == nil {
		i.In = os.Stdin
	}
	if i.Out == nil {
		i.Out = os.Stdout
	}
	if i.SettingsFile == "" {
		i.SettingsFile = "parcInfoCP/settings.py"
	}
	if i.Requirements == "" {
		i.Requirements = "requirements.txt"
	}

	reader := bufio.NewReader(i.In)
	if i.ProjectPath == "" {
		path, err := i.prompt(reader, "Enter the full path to your Django project: ")
		if err != nil {
			return fmt.Errorf("can't read project path: %w", err)
		}
		i.ProjectPath = path
	}
	if i.ServerIP == "" {
		ip, err := i.prompt(reader, "Enter the Zabbix server IP: ")
		if err != nil {
			return fmt.Errorf("can't read server ip: %w", err)
		}
		i.ServerIP = ip
	}

	// the one fatal check, nothing is touched if it fails
	fi, err := os.Stat(i.ProjectPath)
	if err != nil || !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", i.ProjectPath)
	}

	if err := i.makeDirs(); err != nil {
		return err
	}

	if !i.SkipPip {
		i.installRequirements(ctx)
	}

	if err := i.appendSettings(); err != nil {
		return err
	}

	i.printChecklist()
	return nil
}

func (i *Installer) prompt(reader *bufio.Reader, msg string) (string, error) {
	fmt.Fprint(i.Out, msg)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// makeDirs creates the runtime directories inside the project
func (i *Installer) makeDirs() error {
	for _, dir := range projectDirs {
		path := filepath.Join(i.ProjectPath, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("can't create %s: %w", path, err)
		}
		log.Printf("[INFO] created %s", path)
	}
	return nil
}

// findVenv returns the activate script of the project virtualenv, empty if none found
func (i *Installer) findVenv() string {
	for _, rel := range venvActivates {
		path := filepath.Join(i.ProjectPath, rel)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// installRequirements runs pip install inside the project virtualenv if one is found.
// Failures are logged and the run continues, matching the original script behavior.
func (i *Installer) installRequirements(ctx context.Context) {
	cmdLine := "pip install -r " + i.Requirements
	if activate := i.findVenv(); activate != "" {
		log.Printf("[INFO] using virtualenv %s", activate)
		cmdLine = ". " + activate + " && " + cmdLine
	} else {
		log.Printf("[WARN] no virtualenv found in %s, installing with system pip", i.ProjectPath)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", cmdLine) // nolint:gosec // paths come from operator input
	cmd.Dir = i.ProjectPath
	cmd.Stdout = i.Out
	cmd.Stderr = i.Out
	if err := cmd.Run(); err != nil {
		log.Printf("[WARN] pip install failed, %v, continuing", err)
	}
}

var settingsTmpl = template.Must(template.New("settings").Parse(`

{{.Marker}}
ZABBIX_CONFIG = {
    'URL': 'http://{{.ServerIP}}/zabbix/api_jsonrpc.php',
    'USERNAME': 'Admin',
    'PASSWORD': 'zabbix',
    'TIMEOUT': 30,
    'VERIFY_SSL': False,
}

CELERY_BROKER_URL = 'redis://{{.ServerIP}}:6379/0'
CELERY_RESULT_BACKEND = 'redis://{{.ServerIP}}:6379/0'

CELERY_BEAT_SCHEDULE = {
    'bulk-sync-monitoring': {
        'task': 'assets.tasks.bulk_sync_monitoring',
        'schedule': 3600.0,
    },
}

LOGGING = {
    'version': 1,
    'disable_existing_loggers': False,
    'handlers': {
        'file': {
            'level': 'INFO',
            'class': 'logging.FileHandler',
            'filename': BASE_DIR / 'logs/django.log',
        },
        'console': {
            'level': 'INFO',
            'class': 'logging.StreamHandler',
        },
    },
    'loggers': {
        'assets.signals': {
            'handlers': ['file', 'console'],
            'level': 'INFO',
            'propagate': True,
        },
        'django': {
            'handlers': ['file'],
            'level': 'INFO',
            'propagate': True,
        },
    },
}
`))

// appendSettings renders the monitoring settings block and appends it to the
// project settings file. A prior block triggers a warning but the append still
// happens, each run is meant to be manual and one-time.
func (i *Installer) appendSettings() error {
	path := filepath.Join(i.ProjectPath, i.SettingsFile)

	if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), blockMarker) { // nolint:gosec
		log.Printf("[WARN] settings block already present in %s, appending another copy", path)
	}

	buf := strings.Builder{}
	err := settingsTmpl.Execute(&buf, struct {
		Marker   string
		ServerIP string
	}{Marker: blockMarker, ServerIP: i.ServerIP})
	if err != nil {
		return fmt.Errorf("can't render settings block: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // nolint:gosec
	if err != nil {
		return fmt.Errorf("can't open %s: %w", path, err)
	}
	defer f.Close() // nolint:errcheck // write error checked below

	if _, err := f.WriteString(buf.String()); err != nil {
		return fmt.Errorf("can't append settings to %s: %w", path, err)
	}
	log.Printf("[INFO] settings appended to %s", path)
	return nil
}

// printChecklist prints the manual follow-up steps
func (i *Installer) printChecklist() {
	fmt.Fprintf(i.Out, `
Setup complete. Manual steps left:

 1. Review the appended block in %s, set real Zabbix credentials.
 2. Run migrations:          python manage.py migrate
 3. Collect static files:    python manage.py collectstatic --noinput
 4. Start a celery worker:   celery -A parcInfoCP worker -l info
 5. Start the beat schedule: celery -A parcInfoCP beat -l info
 6. Verify Zabbix API access at http://%s/zabbix/api_jsonrpc.php
 7. Make sure redis is reachable at %s:6379

`, i.SettingsFile, i.ServerIP, i.ServerIP)
}
