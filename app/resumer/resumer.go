// Package resumer handles auto-resume of sync tasks interrupted by a crash or restart
package resumer

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/go-pkgz/lgr"
)

// Resumer keeps track of running tasks in .zbxlink files
type Resumer struct {
	location string
	enabled  bool
	seq      uint64
}

// Task keeps file name and task kind
type Task struct {
	Kind  string
	Fname string
}

// New makes resumer for given location. Enabled affects List only
func New(location string, enabled bool) *Resumer {
	if enabled {
		if err := os.MkdirAll(location, 0o700); err != nil {
			log.Printf("[DEBUG] can't make %s, %s", location, err)
		}
	}
	return &Resumer{location: location, enabled: enabled}
}

// OnStart makes a file for started task as dt-seq.zbxlink
func (r *Resumer) OnStart(kind string) (string, error) {
	if !r.enabled {
		return "", nil
	}
	seq := atomic.AddUint64(&r.seq, 1)
	fname := fmt.Sprintf("%s/%d-%d.zbxlink", r.location, time.Now().UnixNano(), seq)
	log.Printf("[DEBUG] create resumer file %s", fname)
	return fname, os.WriteFile(fname, []byte(kind), 0o600)
}

// OnFinish removes zbxlink file
func (r *Resumer) OnFinish(fname string) error {
	if !r.enabled {
		return nil
	}
	log.Printf("[DEBUG] delete resumer file %s", fname)
	return os.Remove(fname)
}

// List resumer files and filter old files from this result
func (r *Resumer) List() (res []Task) {
	if !r.enabled {
		return []Task{}
	}

	entries, err := os.ReadDir(r.location)
	if err != nil {
		log.Printf("[WARN] can't get resume list for %s, %s", r.location, err)
		return []Task{}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".zbxlink") {
			continue
		}

		finfo, err := entry.Info()
		if err != nil {
			log.Printf("[WARN] can't get resume info for %s, %s", entry.Name(), err)
			continue
		}

		fileName := path.Join(r.location, finfo.Name())
		// skip old files
		if finfo.ModTime().Add(24 * time.Hour).Before(time.Now()) {
			log.Printf("[DEBUG] resume file %s too old", fileName)
			if err := os.Remove(fileName); err != nil {
				log.Printf("[WARN] can't delete %s, %s", fileName, err)
			}
			continue
		}
		data, err := os.ReadFile(fileName) // nolint gosec
		if err != nil {
			log.Printf("[WARN] failed to read resume file %s, %s", fileName, err)
			continue
		}
		resEntry := Task{Fname: fileName, Kind: string(data)}
		log.Printf("[DEBUG] resume entry %+v", resEntry)
		res = append(res, resEntry)
	}
	return res
}

func (r *Resumer) String() string {
	return fmt.Sprintf("enabled:%v, location:%s", r.enabled, r.location)
}
