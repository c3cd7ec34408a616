package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/robfig/cron/v3"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/parcinfo/zbxlink/app/conditions"
	"github.com/parcinfo/zbxlink/app/notify"
	"github.com/parcinfo/zbxlink/app/resumer"
	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/service"
	"github.com/parcinfo/zbxlink/app/setup"
	"github.com/parcinfo/zbxlink/app/store"
	syncer "github.com/parcinfo/zbxlink/app/sync"
	"github.com/parcinfo/zbxlink/app/web"
	"github.com/parcinfo/zbxlink/app/zabbix"
)

var opts struct {
	TasksFile    string        `short:"f" long:"file" env:"ZBXLINK_FILE" default:"zbxlink.yml" description:"tasks file"`
	DB           string        `long:"db" env:"ZBXLINK_DB" default:"var/zbxlink.db" description:"sqlite database location"`
	Resume       string        `short:"r" long:"resume" env:"ZBXLINK_RESUME" description:"auto-resume location"`
	UpdateEnable bool          `short:"u" long:"update" env:"ZBXLINK_UPDATE" description:"reload tasks file on change"`
	Jitter       time.Duration `short:"j" long:"jitter" env:"ZBXLINK_JITTER" default:"0s" description:"random delay before each run, up to the given duration"`
	DeDup        bool          `long:"dedup" env:"ZBXLINK_DEDUP" description:"prevent overlapping runs of the same task"`
	HostName     string        `long:"host" env:"ZBXLINK_HOSTNAME" description:"host name reported in notifications and api"`
	Dbg          bool          `long:"dbg" env:"ZBXLINK_DEBUG" description:"debug mode"`

	Zabbix struct {
		URL           string        `long:"url" env:"URL" description:"zabbix api url, e.g. http://zabbix.local/api_jsonrpc.php"`
		User          string        `long:"user" env:"USER" default:"Admin" description:"zabbix api user"`
		Password      string        `long:"password" env:"PASSWORD" description:"zabbix api password"`
		Timeout       time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"zabbix api timeout"`
		SNMPCommunity string        `long:"snmp-community" env:"SNMP_COMMUNITY" default:"public" description:"snmp community for created host interfaces"`
	} `group:"zabbix" namespace:"zabbix" env-namespace:"ZBXLINK_ZABBIX"`

	Repeater struct {
		Attempts int           `long:"attempts" env:"ATTEMPTS" default:"1" description:"how many times to repeat a failed task"`
		Duration time.Duration `long:"duration" env:"DURATION" default:"1s" description:"initial repeat duration"`
		Factor   float64       `long:"factor" env:"FACTOR" default:"3" description:"backoff factor"`
		Jitter   bool          `long:"jitter" env:"JITTER" description:"jitter"`
	} `group:"repeater" namespace:"repeater" env-namespace:"ZBXLINK_REPEATER"`

	Notify struct {
		EnabledError       bool          `long:"enabled-error" env:"ENABLED_ERROR" description:"enable notifications on errors"`
		EnabledCompletion  bool          `long:"enabled-complete" env:"ENABLED_COMPLETE" description:"enable completion notifications"`
		ErrorTemplate      string        `long:"err-template" env:"ERR_TEMPLATE" description:"error template file"`
		CompletionTemplate string        `long:"complete-template" env:"COMPLETE_TEMPLATE" description:"completion template file"`
		SMTPHost           string        `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host"`
		SMTPPort           int           `long:"smtp-port" env:"SMTP_PORT" description:"SMTP port"`
		SMTPUsername       string        `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP user name"`
		SMTPPassword       string        `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
		SMTPTLS            bool          `long:"smtp-tls" env:"SMTP_TLS" description:"enable SMTP TLS"`
		SMTPStartTLS       bool          `long:"smtp-starttls" env:"SMTP_STARTTLS" description:"enable SMTP StartTLS"`
		SMTPTimeOut        time.Duration `long:"smtp-timeout" env:"SMTP_TIMEOUT" default:"10s" description:"SMTP TCP connection timeout"`
		FromEmail          string        `long:"from" env:"FROM" description:"from email"`
		ToEmails           []string      `long:"to" env:"TO" description:"to email(s)" env-delim:","`
		SlackToken         string        `long:"slack-token" env:"SLACK_TOKEN" description:"slack token"`
		SlackChannels      []string      `long:"slack-channels" env:"SLACK_CHANNELS" description:"slack channels" env-delim:","`
		TelegramToken      string        `long:"telegram-token" env:"TELEGRAM_TOKEN" description:"telegram token"`
		TelegramDests      []string      `long:"telegram-destinations" env:"TELEGRAM_DESTINATIONS" description:"telegram destinations" env-delim:","`
		WebhookURLs        []string      `long:"webhook-urls" env:"WEBHOOK_URLS" description:"webhook urls" env-delim:","`
		MaxLogLines        int           `long:"max-log" env:"MAX_LOG" default:"100" description:"max number of captured log lines"`
		TimeOut            time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"notification timeout"`
	} `group:"notify" namespace:"notify" env-namespace:"ZBXLINK_NOTIFY"`

	Web struct {
		Enabled bool   `long:"enabled" env:"ENABLED" description:"enable status api"`
		Address string `long:"address" env:"ADDRESS" default:":8080" description:"listen address"`
	} `group:"web" namespace:"web" env-namespace:"ZBXLINK_WEB"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable file logging"`
		Filename        string `long:"filename" env:"FILENAME" default:"logs/zbxlink.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size, megabytes"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max log file age, days"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of rotated log files"`
		EnabledCompress bool   `long:"enabled-compress" env:"ENABLED_COMPRESS" description:"compress rotated log files"`
	} `group:"log" namespace:"log" env-namespace:"ZBXLINK_LOG"`

	SetupCmd struct {
		Path     string `long:"path" env:"PATH" description:"django project path, prompted if empty"`
		IP       string `long:"ip" env:"IP" description:"zabbix server ip, prompted if empty"`
		Settings string `long:"settings" env:"SETTINGS" default:"parcInfoCP/settings.py" description:"settings file relative to the project"`
		SkipPip  bool   `long:"skip-pip" env:"SKIP_PIP" description:"skip pip install step"`
	} `command:"setup" description:"scaffold a django project for zabbix monitoring"`

	RunCmd struct{} `command:"run" description:"run the scheduler daemon"`

	SyncCmd struct{} `command:"sync" description:"one-shot bulk sync of the inventory to zabbix"`

	VerifyCmd struct{} `command:"verify" description:"verify the tasks file"`
}

var revision = "unknown"

func main() {
	fmt.Printf("zbxlink %s\n", revision)

	p := flags.NewParser(&opts, flags.Default)
	if _, err := p.Parse(); err != nil {
		os.Exit(2)
	}
	logWriter := setupLogs()

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel) // handle SIGQUIT and SIGTERM

	var err error
	switch p.Active.Name {
	case "setup":
		err = runSetup(ctx)
	case "run":
		err = runDaemon(ctx, logWriter)
	case "sync":
		err = runSync(ctx)
	case "verify":
		err = runVerify()
	}
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// runSetup executes the one-shot django project scaffolding
func runSetup(ctx context.Context) error {
	inst := setup.Installer{
		ProjectPath:  opts.SetupCmd.Path,
		ServerIP:     opts.SetupCmd.IP,
		SettingsFile: opts.SetupCmd.Settings,
		SkipPip:      opts.SetupCmd.SkipPip,
	}
	return inst.Run(ctx)
}

// runDaemon starts the blocking scheduler and, if enabled, the status api
func runDaemon(ctx context.Context, logWriter io.Writer) error {
	st, err := makeStore()
	if err != nil {
		return err
	}
	defer st.Close() // nolint:errcheck

	syncSvc := makeSyncService(st)
	parser := schedule.New(opts.TasksFile, 10*time.Second)
	rptr := repeater.New(&strategy.Backoff{Repeats: opts.Repeater.Attempts, Duration: opts.Repeater.Duration,
		Factor: opts.Repeater.Factor, Jitter: opts.Repeater.Jitter})

	manualTrigger := make(chan service.ManualTaskRequest, 10)

	scheduler := service.Scheduler{
		Cron:              cron.New(),
		Resumer:           resumer.New(opts.Resume, opts.Resume != ""),
		TaskParser:        parser,
		TaskRunner:        syncSvc,
		Recorder:          st,
		UpdatesEnabled:    opts.UpdateEnable,
		Jitter:            opts.Jitter,
		Notifier:          makeNotifier(),
		DeDup:             service.NewDeDup(opts.DeDup),
		ConditionChecker:  &conditions.Checker{},
		HostName:          makeHostName(),
		NotifyMaxLogLines: opts.Notify.MaxLogLines,
		EnableLogPrefix:   opts.Log.Enabled,
		Repeater:          rptr,
		Stdout:            logWriter,
		NotifyTimeout:     opts.Notify.TimeOut,
		ManualTrigger:     manualTrigger,
	}
	scheduler.RepeaterDefaults.Attempts = opts.Repeater.Attempts
	scheduler.RepeaterDefaults.Duration = opts.Repeater.Duration
	scheduler.RepeaterDefaults.Factor = opts.Repeater.Factor
	scheduler.RepeaterDefaults.Jitter = opts.Repeater.Jitter

	if opts.Web.Enabled {
		srv, err := web.New(web.Config{
			TaskProvider:  parser,
			Runs:          st,
			Zabbix:        syncSvc,
			Snapshots:     syncSvc,
			ManualTrigger: manualTrigger,
			Version:       revision,
			Hostname:      makeHostName(),
		})
		if err != nil {
			return fmt.Errorf("can't make web server: %w", err)
		}
		go func() {
			if err := srv.Run(ctx, opts.Web.Address); err != nil {
				log.Printf("[ERROR] web server terminated, %v", err)
			}
		}()
	}

	scheduler.Do(ctx)
	return nil
}

// runSync executes a single bulk sync pass and prints the result as json
func runSync(ctx context.Context) error {
	st, err := makeStore()
	if err != nil {
		return err
	}
	defer st.Close() // nolint:errcheck

	syncSvc := makeSyncService(st)
	started := time.Now()
	res, syncErr := syncSvc.BulkSync(ctx)

	run := store.Run{Task: schedule.KindBulkSync, StartedAt: started, FinishedAt: time.Now(),
		Status: "ok", SuccessCount: res.SuccessCount, ErrorCount: res.ErrorCount}
	if syncErr != nil {
		run.Status = "failed"
		run.Details = syncErr.Error()
	}
	if e := st.RecordRun(ctx, run); e != nil {
		log.Printf("[WARN] failed to record run, %v", e)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("can't marshal sync result: %w", err)
	}
	fmt.Println(string(data))
	return syncErr
}

// runVerify loads and validates the tasks file
func runVerify() error {
	parser := schedule.New(opts.TasksFile, 0)
	tasks, err := parser.List()
	if err != nil {
		return fmt.Errorf("tasks file %s invalid: %w", opts.TasksFile, err)
	}
	log.Printf("[INFO] tasks file %s is valid, %d tasks", opts.TasksFile, len(tasks))
	return nil
}

func makeStore() (*store.Store, error) {
	if dir := filepath.Dir(opts.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("can't make db location %s: %w", dir, err)
		}
	}
	st, err := store.NewSQLite(opts.DB)
	if err != nil {
		return nil, fmt.Errorf("can't open db %s: %w", opts.DB, err)
	}
	return st, nil
}

func makeSyncService(st *store.Store) *syncer.Service {
	client := zabbix.NewClient(zabbix.Params{
		URL:      opts.Zabbix.URL,
		User:     opts.Zabbix.User,
		Password: opts.Zabbix.Password,
		Timeout:  opts.Zabbix.Timeout,
	})
	return syncer.New(client, st, opts.Zabbix.SNMPCommunity)
}

func makeNotifier() *notify.Service {
	if !opts.Notify.EnabledError && !opts.Notify.EnabledCompletion {
		return nil
	}

	if opts.Notify.FromEmail == "" {
		opts.Notify.FromEmail = "zbxlink@" + makeHostName()
	}

	return notify.NewService(
		notify.Params{
			EnabledError:       opts.Notify.EnabledError,
			EnabledCompletion:  opts.Notify.EnabledCompletion,
			ErrorTemplate:      opts.Notify.ErrorTemplate,
			CompletionTemplate: opts.Notify.CompletionTemplate,
			HostName:           makeHostName(),
		},
		notify.SendersParams{
			FromEmail:            opts.Notify.FromEmail,
			ToEmails:             opts.Notify.ToEmails,
			SMTPHost:             opts.Notify.SMTPHost,
			SMTPPort:             opts.Notify.SMTPPort,
			SMTPTLS:              opts.Notify.SMTPTLS,
			SMTPStartTLS:         opts.Notify.SMTPStartTLS,
			SMTPUsername:         opts.Notify.SMTPUsername,
			SMTPPassword:         opts.Notify.SMTPPassword,
			SMTPTimeOut:          opts.Notify.SMTPTimeOut,
			SlackToken:           opts.Notify.SlackToken,
			SlackChannels:        opts.Notify.SlackChannels,
			TelegramToken:        opts.Notify.TelegramToken,
			TelegramDestinations: opts.Notify.TelegramDests,
			WebhookURLs:          opts.Notify.WebhookURLs,
		})
}

func makeHostName() string {
	if opts.HostName != "" {
		return opts.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

func setupLogs() io.Writer {
	logOpts := []log.Option{log.Msec, log.LevelBraces}
	if opts.Dbg {
		logOpts = append(logOpts, log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}

	if !opts.Log.Enabled {
		log.Setup(logOpts...)
		return os.Stdout
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.Log.Filename,
		MaxSize:    opts.Log.MaxSize,
		MaxBackups: opts.Log.MaxBackups,
		MaxAge:     opts.Log.MaxAge,
		Compress:   opts.Log.EnabledCompress,
	}
	logOpts = append(logOpts, log.Out(io.MultiWriter(os.Stdout, fileWriter)))
	log.Setup(logOpts...)
	return fileWriter
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM)
}
