package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/service"
	"github.com/parcinfo/zbxlink/app/store"
)

// StatusResponse is the JSON response for /api/v1/status
type StatusResponse struct {
	Version   string       `json:"version"`
	Hostname  string       `json:"hostname"`
	Started   time.Time    `json:"started"`
	Uptime    string       `json:"uptime"`
	Zabbix    ZabbixHealth `json:"zabbix"`
	Timestamp time.Time    `json:"timestamp"`
}

// ZabbixHealth reports connectivity to the Zabbix API
type ZabbixHealth struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TaskInfo represents a scheduled task in JSON API response
type TaskInfo struct {
	Name         string    `json:"name,omitempty"`
	Kind         string    `json:"task"`
	Spec         string    `json:"spec"`
	HistoryHours int       `json:"history_hours,omitempty"`
	NextRun      time.Time `json:"next_run,omitzero"`
	LastRun      time.Time `json:"last_run,omitzero"`
	LastStatus   string    `json:"last_status,omitempty"`
}

// TasksResponse is the JSON response for /api/v1/tasks
type TasksResponse struct {
	Tasks     []TaskInfo `json:"tasks"`
	Timestamp time.Time  `json:"timestamp"`
}

// RunsResponse is the JSON response for /api/v1/runs
type RunsResponse struct {
	Runs      []store.Run `json:"runs"`
	Timestamp time.Time   `json:"timestamp"`
}

// SyncRequest is the JSON body for POST /api/v1/sync
type SyncRequest struct {
	Task         string `json:"task"`
	HistoryHours int    `json:"history_hours,omitempty"`
}

// handleStatus returns daemon and Zabbix connection summary - designed for CLI/jq consumption
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Version:   s.version,
		Hostname:  s.hostname,
		Started:   s.startTime,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	if s.zabbix != nil {
		version, err := s.zabbix.TestConnection(r.Context())
		if err != nil {
			resp.Zabbix = ZabbixHealth{OK: false, Error: err.Error()}
		} else {
			resp.Zabbix = ZabbixHealth{OK: true, Version: version}
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleTasks returns the scheduled tasks with computed next run and recorded last run
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskProvider.List()
	if err != nil {
		log.Printf("[ERROR] failed to list tasks: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	lastRuns := s.lastRunByKind(r)

	infos := make([]TaskInfo, 0, len(tasks))
	for _, t := range tasks {
		info := TaskInfo{
			Name:         t.Name,
			Kind:         t.Kind,
			Spec:         t.Spec,
			HistoryHours: t.HistoryHours,
		}
		if sched, e := cron.ParseStandard(t.Spec); e == nil {
			info.NextRun = sched.Next(time.Now())
		}
		if run, ok := lastRuns[t.Kind]; ok {
			info.LastRun = run.FinishedAt
			info.LastStatus = run.Status
		}
		infos = append(infos, info)
	}

	s.writeJSON(w, http.StatusOK, TasksResponse{Tasks: infos, Timestamp: time.Now()})
}

// lastRunByKind returns the most recent recorded run for each task kind
func (s *Server) lastRunByKind(r *http.Request) map[string]store.Run {
	res := map[string]store.Run{}
	runs, err := s.runs.LastRuns(r.Context(), 100)
	if err != nil {
		log.Printf("[WARN] failed to load run history: %v", err)
		return res
	}
	for _, run := range runs { // newest first, keep the first seen per kind
		if _, ok := res[run.Task]; !ok {
			res[run.Task] = run
		}
	}
	return res
}

// handleRuns returns recent run history, newest first
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 1000 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.runs.LastRuns(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to load run history: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load run history")
		return
	}

	s.writeJSON(w, http.StatusOK, RunsResponse{Runs: runs, Timestamp: time.Now()})
}

// handleSnapshot returns the cached monitoring snapshot for one equipment record.
// Snapshots are filled by the collect-metrics task, 404 until the first collection.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "snapshots disabled")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeJSONError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}

	snap, ok := s.snapshots.GetSnapshot(id)
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "no snapshot for equipment "+strconv.FormatInt(id, 10))
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// handleManualSync pushes a manual trigger request to the scheduler
func (s *Server) handleManualSync(w http.ResponseWriter, r *http.Request) {
	if s.manualTrigger == nil {
		s.writeJSONError(w, http.StatusServiceUnavailable, "manual trigger disabled")
		return
	}

	req := SyncRequest{Task: schedule.KindBulkSync}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	switch req.Task {
	case schedule.KindBulkSync, schedule.KindCollectMetrics, schedule.KindCleanup:
	default:
		s.writeJSONError(w, http.StatusBadRequest, "unknown task "+req.Task)
		return
	}

	select {
	case s.manualTrigger <- service.ManualTaskRequest{Kind: req.Task, HistoryHours: req.HistoryHours}:
		log.Printf("[INFO] manual %s triggered via api", req.Task)
		s.writeJSON(w, http.StatusAccepted, map[string]string{"result": "accepted", "task": req.Task})
	default:
		s.writeJSONError(w, http.StatusConflict, "trigger queue full, try again later")
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
