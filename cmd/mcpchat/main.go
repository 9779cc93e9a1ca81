// Command mcpchat is an interactive chat client that answers queries with
// an OpenAI-compatible model, letting the model call tools served by an
// MCP server subprocess.
//
// Usage:
//
//	mcpchat <path_to_server_script>
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	openai "github.com/sashabaranov/go-openai"

	"github.com/localrivet/mcpchat/chat"
	"github.com/localrivet/mcpchat/config"
	"github.com/localrivet/mcpchat/host"
	"github.com/localrivet/mcpchat/logx"
	"github.com/localrivet/mcpchat/transport/stdio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mcpchat <path_to_server_script>")
		os.Exit(1)
	}
	os.Exit(run(os.Args[1]))
}

func run(scriptPath string) int {
	logger := logx.NewDefault()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		return 1
	}

	cmd, err := stdio.CommandForScript(scriptPath)
	if err != nil {
		logger.Error("unsupported server script", "error", err)
		return 1
	}

	transport := stdio.New(cmd, logx.Component(logger, "transport"))
	if err := transport.Start(); err != nil {
		logger.Error("failed to start tool server", "error", err)
		return 1
	}

	session := host.New(transport, host.WithLogger(logx.Component(logger, "host")))
	// The session guards the subprocess; this runs on every exit path.
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("error closing tool server session", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Initialize(ctx); err != nil {
		logger.Error("tool server handshake failed", "error", err)
		return 1
	}
	if err := session.Ping(ctx); err != nil {
		logger.Error("tool server failed liveness check", "error", err)
		return 1
	}

	tools, err := session.ListTools(ctx)
	if err != nil {
		logger.Error("failed to list tools", "error", err)
		return 1
	}
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	fmt.Printf("\nConnected to server with tools: %v\n", names)

	backendCfg := openai.DefaultConfig(cfg.APIKey)
	backendCfg.BaseURL = cfg.BaseURL
	backend := openai.NewClientWithConfig(backendCfg)

	orchestrator := chat.NewOrchestrator(backend, session, cfg.Model, cfg.MaxTokens, logx.Component(logger, "chat"))

	chatLoop(ctx, orchestrator, session)
	return 0
}

// chatLoop runs the interactive session until quit, EOF, or interrupt.
// A failed turn is reported and the loop keeps going.
func chatLoop(ctx context.Context, orchestrator *chat.Orchestrator, session *host.Session) {
	fmt.Println("\nMCP Client Started!")
	fmt.Println("Type your queries, 'tools' to list tools, or 'quit' to exit.")

	// stdin is read on a separate goroutine so an interrupt ends the
	// session even while waiting at the prompt.
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("\nQuery: ")

		var query string
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			query = strings.TrimSpace(line)
		}

		switch {
		case query == "":
			continue
		case strings.EqualFold(query, "quit"):
			return
		case strings.EqualFold(query, "tools"):
			printTools(ctx, session)
			continue
		}

		answer, err := orchestrator.ProcessQuery(ctx, query)
		if err != nil {
			// A closed transport never recovers: the subprocess is gone
			// (or was torn down after a timed-out call), so stop instead
			// of failing every following query.
			if errors.Is(err, stdio.ErrClosed) {
				fmt.Println("\nError: connection to the tool server was closed; exiting.")
				return
			}
			fmt.Printf("\nError: %v\n", err)
			continue
		}
		fmt.Printf("\nResponse:\n%s\n", answer)
	}
}

func printTools(ctx context.Context, session *host.Session) {
	tools, err := session.ListTools(ctx)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	for _, tool := range tools {
		fmt.Printf("  %s - %s\n", tool.Name, tool.Description)
	}
}
