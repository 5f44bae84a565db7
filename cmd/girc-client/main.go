package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tehcyx/girc-client/internal/app"
	"github.com/tehcyx/girc-client/internal/config"
	"github.com/tehcyx/girc-client/internal/console"
	"github.com/tehcyx/girc-client/pkg/client"
	"github.com/tehcyx/girc-client/pkg/redis"
	"github.com/tehcyx/girc-client/pkg/transport"
	"github.com/tehcyx/girc-client/pkg/version"
)

const (
	// replaySize is the number of transcript lines shown when joining a channel.
	replaySize   = 20
	closeTimeout = 2 * time.Second
)

type flags struct {
	configPath  string
	host        string
	port        int
	nick        string
	debug       bool
	prompt      bool
	showVersion bool
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.configPath, "config", "", "path to the config file (default ~/.girc/client.yaml)")
	flag.StringVar(&f.host, "host", "", "IRC server host, overrides the config")
	flag.IntVar(&f.port, "port", 0, "IRC server port, overrides the config")
	flag.StringVar(&f.nick, "nick", "", "nickname, overrides the config")
	flag.BoolVar(&f.debug, "debug", false, "log protocol traffic")
	flag.BoolVar(&f.prompt, "prompt", false, "ask for server and registration details on start")
	flag.BoolVar(&f.showVersion, "version", false, "print the version and exit")
	flag.Parse()
	return f
}

func main() {
	if err := run(parseFlags()); err != nil {
		log.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	if f.showVersion {
		fmt.Println(version.UserAgent())
		return nil
	}

	confPath := f.configPath
	if confPath == "" {
		var err error
		if confPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	conf, err := config.Load(confPath)
	if err != nil {
		return err
	}
	applyOverrides(conf, f)
	if err := conf.Validate(); err != nil {
		return err
	}
	config.Values = conf

	logFile, err := setupLogging(conf)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log.WithField("version", version.GetVersion()).Info("Launching client...")

	ui := console.New(console.Options{
		TimestampFormat: conf.Client.TimestampFormat,
		HistoryFile:     historyFile(conf),
	})
	defer ui.Close()

	server := &client.ServerInfo{Host: conf.Server.Host, Port: conf.Server.Port}
	reg := &client.RegistrationInfo{
		Password: conf.User.Password,
		Nickname: conf.User.Nick,
		Username: conf.User.Username,
		RealName: conf.User.Realname,
	}
	if reg.RealName == "" {
		reg.RealName = version.UserAgent()
	}
	if f.prompt {
		if server, err = ui.PromptServerInfo(*server); err != nil {
			return err
		}
		if reg, err = ui.PromptRegistration(*reg); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ircClient := client.New(transport.NewTCP(), client.Options{Charset: conf.Client.Encoding})

	if conf.Redis.Enabled {
		store, err := redis.NewStore(conf.Redis.URL, ircClient.SessionID(), conf.Redis.HistorySize)
		if err != nil {
			// the transcript is optional
			log.Warnf("Transcript disabled: %v", err)
		} else {
			defer store.Close()
			wireTranscript(ctx, ircClient, ui, store, server.Host)
		}
	}

	startErr := app.New(ircClient, ui).Start(ctx, server, reg)

	if err := ircClient.Close(); err != nil {
		log.Debugf("Closing connection: %v", err)
	}
	select {
	case <-ircClient.Done():
	case <-time.After(closeTimeout):
		log.Warn("Read loop did not stop in time")
	}
	log.Info("Shutting down client. Bye!")
	return startErr
}

// applyOverrides copies the flags given on the command line over the config.
func applyOverrides(conf *config.Config, f *flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "host":
			conf.Server.Host = f.host
		case "port":
			conf.Server.Port = f.port
		case "nick":
			conf.User.Nick = f.nick
		case "debug":
			conf.Client.Debug = f.debug
		}
	})
}

// setupLogging sends logs to the log file so they do not run through the
// conversation on screen.
func setupLogging(conf *config.Config) (*os.File, error) {
	path := conf.Client.LogFile
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "client.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(logFile)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if conf.Client.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return logFile, nil
}

func historyFile(conf *config.Config) string {
	if conf.Client.HistoryFile != "" {
		return conf.Client.HistoryFile
	}
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

// wireTranscript records every displayed message, replays the recent
// transcript when a channel is joined and surfaces private messages received
// by other sessions.
func wireTranscript(ctx context.Context, c *client.Client, ui *console.Console, store *redis.Store, host string) {
	c.OnMessageReceived(store.Recorder(ctx, host, c.CurrentChannel))

	c.OnChannelChanged(func(channel string) error {
		if channel == "" {
			return nil
		}
		entries, err := store.Recent(ctx, host, channel, replaySize)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			ui.OutputMessage(entry.Message())
		}
		return nil
	})

	entries, err := store.Subscribe(ctx)
	if err != nil {
		log.Warnf("Not following other sessions: %v", err)
		return
	}
	go func() {
		for entry := range entries {
			if entry.Server != host || entry.Type != client.MessagePrivate.String() {
				continue
			}
			ui.OutputMessage(client.Message{
				Type: client.MessageServer,
				Text: fmt.Sprintf("(other session) *%s* %s", entry.User, entry.Text),
			})
		}
	}()
}
