// Package service provides the top level scheduler. Combines all elements (cron, task parser,
// sync runner, resumer and notifications) together and provides the main blocking entry point.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/go-pkgz/syncs"
	"github.com/robfig/cron/v3"

	"github.com/parcinfo/zbxlink/app/resumer"
	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/store"
	syncer "github.com/parcinfo/zbxlink/app/sync"
)

//go:generate moq -out mocks/resumer.go -pkg mocks -skip-ensure -fmt goimports . Resumer
//go:generate moq -out mocks/task_parser.go -pkg mocks -skip-ensure -fmt goimports . TaskParser
//go:generate moq -out mocks/task_runner.go -pkg mocks -skip-ensure -fmt goimports . TaskRunner
//go:generate moq -out mocks/cron.go -pkg mocks -skip-ensure -fmt goimports . Cron
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/dedupper.go -pkg mocks -skip-ensure -fmt goimports . Dedupper
//go:generate moq -out mocks/repeater.go -pkg mocks -skip-ensure -fmt goimports . Repeater
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder
//go:generate moq -out mocks/condition_checker.go -pkg mocks -skip-ensure -fmt goimports . ConditionChecker

// Scheduler is a top-level service wiring cron, the task parser and the sync runner,
// providing the main entry point (blocking) to start the process
type Scheduler struct {
	Cron
	Resumer           Resumer
	ResumeConcurrency int
	TaskParser        TaskParser
	TaskRunner        TaskRunner
	Recorder          Recorder
	UpdatesEnabled    bool
	Jitter            time.Duration
	Notifier          Notifier
	DeDup             Dedupper
	ConditionChecker  ConditionChecker
	HostName          string
	NotifyMaxLogLines int // controls notification output capture buffer size
	EnableLogPrefix   bool
	Repeater          Repeater
	RepeaterDefaults  struct {
		Attempts int
		Duration time.Duration
		Factor   float64
		Jitter   bool
	}
	Stdout        io.Writer
	NotifyTimeout time.Duration
	ManualTrigger chan ManualTaskRequest // channel for manual task triggers
}

// ManualTaskRequest represents a request to trigger a task out of schedule
type ManualTaskRequest struct {
	Kind         string
	HistoryHours int
}

// Resumer defines interface for resumer.Resumer providing auto-restart for interrupted tasks
type Resumer interface {
	OnStart(kind string) (string, error)
	OnFinish(fname string) error
	List() (res []resumer.Task)
	String() string
}

// TaskParser loads the list of tasks and provides updates channel if the config file changed
type TaskParser interface {
	String() string
	List() (result []schedule.Task, err error)
	Changes(ctx context.Context) (<-chan []schedule.Task, error)
}

// TaskRunner executes the actual sync work for each task kind
type TaskRunner interface {
	BulkSync(ctx context.Context) (syncer.BulkResult, error)
	CollectMetrics(ctx context.Context, historyHours int) (syncer.BulkResult, error)
	Cleanup(ctx context.Context) (syncer.BulkResult, error)
}

// Recorder persists task run history
type Recorder interface {
	RecordRun(ctx context.Context, run store.Run) error
}

// Cron interface defines basic robfig/cron methods used by service
type Cron interface {
	Start()
	Stop() context.Context
	Entries() []cron.Entry
	Schedule(schedule cron.Schedule, cmd cron.Job) cron.EntryID
	Remove(id cron.EntryID)
}

// Notifier interface defines notification delivery on failed and completed runs
type Notifier interface {
	Send(ctx context.Context, subj, text string) error
	IsOnError() bool
	IsOnCompletion() bool
	MakeErrorHTML(task, errorLog string) (string, error)
	MakeCompletionHTML(task string) (string, error)
}

// Dedupper defines a locking primitive to register/unregister task in order to prevent dbl registration
type Dedupper interface {
	Add(key string) bool
	Remove(key string)
}

// Repeater repeats failed function
type Repeater interface {
	Do(ctx context.Context, fun func() error, errors ...error) (err error)
}

// Schedule describes a task's duty cycle.
type Schedule interface {
	Next(time.Time) time.Time
}

// ConditionChecker defines interface for checking task execution conditions
type ConditionChecker interface {
	Check(conditions schedule.ConditionsConfig) (bool, string)
}

// Do runs blocking scheduler. If UpdatesEnabled is true and the task file fails to load,
// the scheduler starts with zero tasks and waits for updates.
func (s *Scheduler) Do(ctx context.Context) {
	if s.ResumeConcurrency <= 0 {
		s.ResumeConcurrency = 1
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	s.resumeInterrupted(s.ResumeConcurrency)

	if s.UpdatesEnabled {
		log.Printf("[INFO] updater activated for %s", s.TaskParser.String())
		go s.reload(ctx) // start background updater
	}

	if s.ManualTrigger != nil {
		go s.listenForManualTriggers(ctx)
	}

	if err := s.loadFromFileParser(ctx); err != nil {
		// only tolerate missing file errors when updates are enabled
		// other errors (permission, parse, validation) should still abort
		if !s.UpdatesEnabled || !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] can't load task file, %v", err)
			return
		}
		log.Printf("[INFO] task file doesn't exist yet, running with zero tasks, waiting for updates")
	}
	s.Start()
	<-ctx.Done()
	log.Print("[DEBUG] terminate")
	<-s.Stop().Done()
}

// schedule makes new cron job from schedule.Task and adds to cron
func (s *Scheduler) schedule(ctx context.Context, t schedule.Task) error {
	log.Printf("[INFO] new task, %q (%s)", t.DisplayName(), t.Spec)
	sched, e := cron.ParseStandard(t.Spec)
	if e != nil {
		return fmt.Errorf("can't parse %s: %w", t.Spec, e)
	}

	id := s.Schedule(sched, s.taskFunc(ctx, t, sched))
	log.Printf("[INFO] first: %s, %q (%v)", sched.Next(time.Now()).Format(time.RFC3339), t.DisplayName(), id)
	return nil
}

func (s *Scheduler) taskFunc(ctx context.Context, t schedule.Task, sched Schedule) cron.FuncJob {
	return func() {
		taskRepeater := s.getTaskRepeater(t.Repeater)

		if t.Conditions != nil {
			if !s.waitForConditions(ctx, *t.Conditions, t.DisplayName()) {
				return
			}
		}

		log.Printf("[INFO] executing: %q", t.DisplayName())
		if err := s.runTask(ctx, t, taskRepeater); err != nil {
			log.Printf("[WARN] task failed: %q, %v", t.DisplayName(), err)
		} else {
			log.Printf("[INFO] completed %q", t.DisplayName())
		}
		log.Printf("[INFO] next: %s, %q", sched.Next(time.Now()).Format(time.RFC3339), t.DisplayName())
	}
}

// runTask executes a single task run: dedup, resumer registration, sync work,
// run recording and notifications
func (s *Scheduler) runTask(ctx context.Context, t schedule.Task, rptr Repeater) error {
	dedupKey := t.Kind + "#" + t.Spec // dedup by kind and spec
	if !s.DeDup.Add(dedupKey) {
		// already running
		return fmt.Errorf("duplicated task %q ignored", dedupKey)
	}
	defer s.DeDup.Remove(dedupKey)

	rfile, rerr := s.Resumer.OnStart(t.Kind) // register task in resumer prior to execution
	if rerr != nil {
		return fmt.Errorf("failed to initiate resumer for %s: %w", t.Kind, rerr)
	}

	started := time.Now()
	res, output, err := s.executeTask(ctx, t, s.Stdout, rptr)
	s.recordRun(ctx, t, started, res, err)

	ctxTimeout, cancel := context.WithTimeout(ctx, s.NotifyTimeout)
	defer cancel()
	var errMsg string
	if err != nil {
		// combine error with captured output for notification emails
		if output != "" {
			errMsg = err.Error() + "\n\n" + output
		} else {
			errMsg = err.Error()
		}
	}
	if e := s.notify(ctxTimeout, t, errMsg); e != nil {
		return fmt.Errorf("failed to notify: %w", e)
	}
	if err != nil {
		return err
	}

	// if no error, finish (unregister) resumer
	if err := s.Resumer.OnFinish(rfile); err != nil {
		return fmt.Errorf("failed to finish resumer for %s: %w", rfile, err)
	}
	return nil
}

// executeTask invokes the runner for the task kind, repeating on failures.
// Per-host outcomes are written to the log writer and captured for notifications.
func (s *Scheduler) executeTask(ctx context.Context, t schedule.Task, logWriter io.Writer,
	rptr Repeater) (res syncer.BulkResult, output string, err error) {
	if s.Jitter > 0 {
		time.Sleep(time.Millisecond * time.Duration(rand.Intn(int(s.Jitter.Milliseconds())))) //nolint jitter up to jitter duration
	}

	capture := NewOutputCapture(s.NotifyMaxLogLines)
	writers := []io.Writer{capture}
	if s.EnableLogPrefix {
		writers = append(writers, NewLogPrefixer(logWriter, t.DisplayName()))
	} else {
		writers = append(writers, logWriter)
	}
	out := io.MultiWriter(writers...)

	execErr := rptr.Do(ctx, func() error {
		var e error
		res, e = s.invoke(ctx, t)
		for _, r := range res.Processed {
			if r.Err != "" {
				fmt.Fprintf(out, "%s: %s\n", r.Name, r.Err)
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", r.Name, r.Action)
		}
		if e != nil {
			return fmt.Errorf("task %s failed: %w", t.Kind, e)
		}
		return nil
	})

	if execErr != nil {
		return res, capture.GetOutput(), fmt.Errorf("task execution failed: %w", execErr)
	}
	return res, capture.GetOutput(), nil
}

// invoke dispatches a task to the matching runner method
func (s *Scheduler) invoke(ctx context.Context, t schedule.Task) (syncer.BulkResult, error) {
	switch t.Kind {
	case schedule.KindBulkSync:
		return s.TaskRunner.BulkSync(ctx)
	case schedule.KindCollectMetrics:
		hours := t.HistoryHours
		if hours <= 0 {
			hours = 1
		}
		return s.TaskRunner.CollectMetrics(ctx, hours)
	case schedule.KindCleanup:
		return s.TaskRunner.Cleanup(ctx)
	}
	return syncer.BulkResult{}, fmt.Errorf("unsupported task kind %q", t.Kind)
}

// recordRun persists the run outcome, best effort
func (s *Scheduler) recordRun(ctx context.Context, t schedule.Task, started time.Time, res syncer.BulkResult, err error) {
	if s.Recorder == nil {
		return
	}
	run := store.Run{
		Task:         t.Kind,
		StartedAt:    started,
		FinishedAt:   time.Now(),
		Status:       "ok",
		SuccessCount: res.SuccessCount,
		ErrorCount:   res.ErrorCount,
	}
	if err != nil {
		run.Status = "failed"
		run.Details = err.Error()
	}
	if e := s.Recorder.RecordRun(ctx, run); e != nil {
		log.Printf("[WARN] failed to record run for %s, %v", t.Kind, e)
	}
}

func (s *Scheduler) notify(ctx context.Context, t schedule.Task, errMsg string) error {
	if s.Notifier == nil {
		return nil
	}

	if errMsg != "" && s.Notifier.IsOnError() {
		msg, err := s.Notifier.MakeErrorHTML(t.DisplayName(), errMsg)
		if err != nil {
			return fmt.Errorf("can't make html email: %w", err)
		}
		if err := s.Notifier.Send(ctx, fmt.Sprintf("failed %q on %s", t.DisplayName(), s.HostName), msg); err != nil {
			return fmt.Errorf("failed to send error notification: %w", err)
		}
		return nil
	}

	if errMsg == "" && s.Notifier.IsOnCompletion() {
		msg, err := s.Notifier.MakeCompletionHTML(t.DisplayName())
		if err != nil {
			return fmt.Errorf("can't make html email: %w", err)
		}
		if err := s.Notifier.Send(ctx, fmt.Sprintf("completed %q on %s", t.DisplayName(), s.HostName), msg); err != nil {
			return fmt.Errorf("failed to send completion notification: %w", err)
		}
		return nil
	}

	return nil
}

func (s *Scheduler) loadFromFileParser(ctx context.Context) error {
	for _, entry := range s.Entries() {
		s.Remove(entry.ID)
	}

	tasks, err := s.TaskParser.List()
	if err != nil {
		return fmt.Errorf("failed to load file %s: %w", s.TaskParser.String(), err)
	}

	for _, t := range tasks {
		if err = s.schedule(ctx, t); err != nil {
			return fmt.Errorf("can't add %s, %s: %w", t.Spec, t.Kind, err)
		}
	}
	return nil
}

// reload runs blocking loop reacting on updates in the task file and reloading tasks
func (s *Scheduler) reload(ctx context.Context) {
	ch, err := s.TaskParser.Changes(ctx)
	if err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case tasks, ok := <-ch:
			if !ok {
				return
			}
			log.Printf("[DEBUG] tasks update detected, total %d tasks scheduled", len(tasks))
			if err = s.loadFromFileParser(ctx); err != nil {
				log.Printf("[WARN] failed to update tasks, %v", err)
			}
		}
	}
}

// listenForManualTriggers listens for manual task trigger requests
func (s *Scheduler) listenForManualTriggers(ctx context.Context) {
	log.Printf("[INFO] manual trigger listener started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] manual trigger listener stopped: %v", ctx.Err())
			return
		case req, ok := <-s.ManualTrigger:
			if !ok {
				log.Printf("[INFO] manual trigger channel closed")
				return
			}

			log.Printf("[INFO] manual trigger requested for task %s", req.Kind)
			t := schedule.Task{Kind: req.Kind, Spec: "manual", HistoryHours: req.HistoryHours}
			if t.Kind != schedule.KindBulkSync && t.Kind != schedule.KindCollectMetrics && t.Kind != schedule.KindCleanup {
				log.Printf("[WARN] manual trigger failed: unsupported task kind %q", req.Kind)
				continue
			}

			// manual = run now, bypass condition guards but keep default retry logic
			go func(t schedule.Task) {
				select {
				case <-ctx.Done():
					log.Printf("[WARN] skipping manual execution of %s, context canceled", t.Kind)
				default:
					if err := s.runTask(ctx, t, s.Repeater); err != nil {
						log.Printf("[WARN] manual %s failed, %v", t.Kind, err)
					} else {
						log.Printf("[INFO] manual %s completed", t.Kind)
					}
				}
			}(t)
		}
	}
}

// resumeInterrupted re-runs tasks which were registered in resumer but never finished
func (s *Scheduler) resumeInterrupted(concur int) {
	tasks := s.Resumer.List()
	if len(tasks) > 0 {
		log.Printf("[INFO] interrupted tasks detected - %+v", tasks)
	}

	go func() {
		gr := syncs.NewSizedGroup(concur)
		for _, task := range tasks {
			time.Sleep(time.Millisecond * 100) // keep some time between tasks and prevent reordering if no concurrency
			gr.Go(func(ctx context.Context) {
				t := schedule.Task{Kind: task.Kind, Spec: "auto-resume"}
				started := time.Now()
				res, output, err := s.executeTask(ctx, t, s.Stdout, s.Repeater)
				s.recordRun(ctx, t, started, res, err)
				if err != nil {
					ctxTimeout, cancel := context.WithTimeout(ctx, s.NotifyTimeout)
					defer cancel()
					errMsg := err.Error()
					if output != "" {
						errMsg = err.Error() + "\n\n" + output
					}
					if e := s.notify(ctxTimeout, t, errMsg); e != nil {
						log.Printf("[WARN] failed to notify, %v", e)
						return
					}
				}
				if err := s.Resumer.OnFinish(task.Fname); err != nil {
					log.Printf("[WARN] failed to finish resumer for %s, %s", task.Fname, err)
				}
			})
		}
	}()
}

// getTaskRepeater returns a repeater for the task, merging task-specific settings with global defaults
func (s *Scheduler) getTaskRepeater(taskConfig *schedule.RepeaterConfig) Repeater {
	if taskConfig == nil {
		return s.Repeater
	}

	// start with defaults from CLI
	backoff := &strategy.Backoff{
		Repeats:  s.RepeaterDefaults.Attempts,
		Duration: s.RepeaterDefaults.Duration,
		Factor:   s.RepeaterDefaults.Factor,
		Jitter:   s.RepeaterDefaults.Jitter,
	}

	// apply task-specific overrides
	if taskConfig.Attempts != nil {
		backoff.Repeats = *taskConfig.Attempts
	}
	if taskConfig.Duration != nil {
		backoff.Duration = *taskConfig.Duration
	}
	if taskConfig.Factor != nil {
		backoff.Factor = *taskConfig.Factor
	}
	if taskConfig.Jitter != nil {
		backoff.Jitter = *taskConfig.Jitter
	}

	return repeater.New(backoff)
}

// waitForConditions checks if conditions are met and optionally waits for them.
// Returns true if the task should execute, false if it should be skipped
func (s *Scheduler) waitForConditions(ctx context.Context, cond schedule.ConditionsConfig, taskDesc string) bool {
	// if no condition checker configured, always execute
	if s.ConditionChecker == nil {
		return true
	}

	met, reason := s.ConditionChecker.Check(cond)
	if met {
		return true
	}

	// no postpone configured - skip task
	if cond.MaxPostpone == nil {
		log.Printf("[INFO] task skipped: %s, reason: %s", taskDesc, reason)
		return false
	}

	// set up postponement
	deadline := time.Now().Add(*cond.MaxPostpone)
	log.Printf("[INFO] task postponed: %s, reason: %s, deadline: %s",
		taskDesc, reason, deadline.Format(time.RFC3339))

	checkInterval := 30 * time.Second
	if cond.CheckInterval != nil {
		checkInterval = *cond.CheckInterval
	}

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	deadlineTimer := time.NewTimer(*cond.MaxPostpone)
	defer deadlineTimer.Stop()

	for {
		select {
		case <-ticker.C:
			met, reason = s.ConditionChecker.Check(cond)
			if met {
				log.Printf("[INFO] conditions met, executing postponed task: %s", taskDesc)
				return true
			}
			log.Printf("[DEBUG] conditions not met yet: %s, reason: %s", taskDesc, reason)

		case <-deadlineTimer.C:
			log.Printf("[WARN] max postpone reached, executing anyway: %s", taskDesc)
			return true

		case <-ctx.Done():
			log.Printf("[INFO] postponed task canceled: %s", taskDesc)
			return false
		}
	}
}
