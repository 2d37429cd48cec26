package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"legalflow/pkg/chat"
	"legalflow/pkg/compliance"
	"legalflow/pkg/config"
	"legalflow/pkg/logging"
	"legalflow/pkg/server"
	"legalflow/pkg/session"
	"legalflow/pkg/ui"
	"legalflow/pkg/version"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

const usage = `Usage:
  legalflow [flags]                 start the terminal UI
  legalflow [flags] ask [-new-thread] [--] <message>
                                    send one message and print the answer
  legalflow [flags] serve [-addr]   serve the web landing page and chat proxy

Flags:
`

var errEmptyMessage = errors.New("message must not be empty")

type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
}

func main() {
	a := app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
	os.Exit(a.run(os.Args[1:]))
}

func (a app) run(args []string) int {
	fs := flag.NewFlagSet("legalflow", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", config.GetConfigPath(), "path to the config file")
	newThread := fs.Bool("new-thread", false, "discard the stored thread id and start a fresh one")
	showVersion := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(a.stdout, version.Info())
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(a.stderr, "Error in config %s: %v\n", *configPath, err)
		return 1
	}

	rest := fs.Args()
	command := ""
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	var mirrors []io.Writer
	if command == "serve" {
		mirrors = append(mirrors, a.stderr)
	}
	if _, err := logging.Init(cfg, mirrors...); err != nil {
		fmt.Fprintf(a.stderr, "Warning: file logging disabled: %v\n", err)
	}
	slog.Info("legalflow_start", "version", version.Summary(), "command", command, "config_path", *configPath)

	client := compliance.NewClient(cfg.API)

	switch command {
	case "serve":
		return a.serve(cfg, client, rest)
	case "ask":
		askFs := flag.NewFlagSet("ask", flag.ContinueOnError)
		askFs.SetOutput(a.stderr)
		askFs.BoolVar(newThread, "new-thread", *newThread, "discard the stored thread id and start a fresh one")
		if err := askFs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			return 2
		}
		rest = askFs.Args()
	case "":
	default:
		fmt.Fprintf(a.stderr, "Error: unknown command %q\n", command)
		fs.Usage()
		return 2
	}

	store := session.NewStore(cfg.ThreadFilePath())
	threadID, err := loadThread(store, *newThread)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error loading thread id from %s: %v\n", store.Path(), err)
		return 1
	}

	if command == "ask" || !a.isTerminal() {
		message := strings.Join(rest, " ")
		if strings.TrimSpace(message) == "" && !a.isTerminal() {
			data, err := io.ReadAll(a.stdin)
			if err != nil {
				fmt.Fprintf(a.stderr, "Error reading stdin: %v\n", err)
				return 1
			}
			message = string(data)
		}
		return a.ask(client, store, threadID, message)
	}

	return a.runTUI(client, store, threadID)
}

func loadThread(store *session.Store, fresh bool) (string, error) {
	if fresh {
		return store.Reset()
	}
	return store.Load()
}

// ask runs a single exchange and prints the answer.
func (a app) ask(sender chat.Sender, store *session.Store, threadID, message string) int {
	conv := chat.NewConversation(threadID)
	content, ok := conv.Submit(message)
	if !ok {
		fmt.Fprintf(a.stderr, "Error: %v\n", errEmptyMessage)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reply := chat.Exchange(ctx, sender, conv.ThreadID(), content)
	if conv.Apply(reply) {
		if err := store.Save(conv.ThreadID()); err != nil {
			fmt.Fprintf(a.stderr, "Warning: failed to save thread id to %s: %v\n", store.Path(), err)
		}
	}

	last, _ := conv.LastAssistantMessage()
	if reply.Err != nil {
		fmt.Fprintln(a.stderr, last)
		return 1
	}
	fmt.Fprintln(a.stdout, last)
	return 0
}

func (a app) serve(cfg config.Config, sender chat.Sender, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	srv, err := server.New(sender)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error creating server: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(a.stdout, "legalflow serving on %s\n", *addr)
	if err := srv.Run(ctx, *addr); err != nil {
		fmt.Fprintf(a.stderr, "Error running server: %v\n", err)
		return 1
	}
	return 0
}

func (a app) runTUI(client *compliance.Client, store *session.Store, threadID string) int {
	m := ui.NewModel(ui.Options{
		Sender:    client,
		Store:     store,
		ThreadID:  threadID,
		Endpoint:  client.Endpoint(),
		Clipboard: a.stdout,
	})

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(a.stderr, "Error running program: %v\n", err)
		return 1
	}
	slog.Info("legalflow_exit")
	return 0
}
