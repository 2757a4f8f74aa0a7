// Command supportagent runs the product support agent against the Anthropic
// API, either over a fixed set of demo queries or as an interactive chat.
//
// Required configuration:
//
//	ANTHROPIC_API_KEY   API key for the hosted model (fatal if missing)
//
// Optional configuration:
//
//	ANTHROPIC_MODEL     model name override
//	SUPPORTAGENT_STORE  session persistence backend: "redis" or "sqlite"
//	REDIS_ADDR          redis address (default localhost:6379)
//	SUPPORTAGENT_DB     sqlite database path (default supportagent.db)
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kataras/golog"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/smallnest/supportagent/agent"
	"github.com/smallnest/supportagent/log"
	"github.com/smallnest/supportagent/store"
	redisstore "github.com/smallnest/supportagent/store/redis"
	sqlitestore "github.com/smallnest/supportagent/store/sqlite"
)

const defaultModel = "claude-sonnet-4-20250514"

const turnTimeout = 2 * time.Minute

func main() {
	interactive := flag.Bool("i", false, "interactive chat mode")
	verbose := flag.Bool("v", false, "enable debug logging")
	thread := flag.String("thread", "", "resume an existing session by thread ID")
	flag.Parse()

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Fprintln(os.Stderr, "Error: ANTHROPIC_API_KEY not found in environment variables")
		fmt.Fprintln(os.Stderr, "Please set it before starting the agent")
		os.Exit(1)
	}

	logger := log.NewGologLogger(golog.New())
	if *verbose {
		logger.SetLevel(log.LogLevelDebug)
	}

	modelName := os.Getenv("ANTHROPIC_MODEL")
	if modelName == "" {
		modelName = defaultModel
	}

	model, err := anthropic.New(anthropic.WithModel(modelName))
	if err != nil {
		logger.Error("failed to create model client: %v", err)
		os.Exit(1)
	}

	opts := []agent.Option{agent.WithLogger(logger)}

	historyStore, closeStore, err := buildHistoryStore()
	if err != nil {
		logger.Error("failed to set up history store: %v", err)
		os.Exit(1)
	}
	if historyStore != nil {
		defer closeStore()
		opts = append(opts, agent.WithHistoryStore(historyStore))
	}
	if *thread != "" {
		opts = append(opts, agent.WithThreadID(*thread))
	}

	a, err := agent.New(model, opts...)
	if err != nil {
		logger.Error("failed to create agent: %v", err)
		os.Exit(1)
	}

	if *interactive {
		runInteractive(a)
		return
	}
	runDemo(a)
}

// buildHistoryStore picks the session persistence backend from the
// environment. Nil means sessions live only in process memory.
func buildHistoryStore() (store.HistoryStore, func(), error) {
	switch os.Getenv("SUPPORTAGENT_STORE") {
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		s := redisstore.NewRedisHistoryStore(redisstore.RedisOptions{
			Addr: addr,
			TTL:  24 * time.Hour,
		})
		return s, func() { s.Close() }, nil
	case "sqlite":
		path := os.Getenv("SUPPORTAGENT_DB")
		if path == "" {
			path = "supportagent.db"
		}
		s, err := sqlitestore.NewSqliteHistoryStore(sqlitestore.SqliteOptions{Path: path})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "":
		return nil, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown SUPPORTAGENT_STORE value %q", os.Getenv("SUPPORTAGENT_STORE"))
	}
}

func runDemo(a *agent.SupportAgent) {
	fmt.Println("Product Support Agent")
	fmt.Println(strings.Repeat("=", 60))

	queries := []string{
		"Tell me about the smartphone",
		"What is the price of headphones?",
		"What is the SKU for the speaker?",
	}

	for _, query := range queries {
		fmt.Printf("\nUser: %s\n", query)

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		answer, err := a.Run(ctx, query)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Agent: %s\n", answer)
	}
}

func runInteractive(a *agent.SupportAgent) {
	fmt.Println("Product Support Agent (interactive)")
	fmt.Printf("Session: %s\n", a.ThreadID())
	fmt.Println("Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
		answer, err := a.Chat(ctx, input)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Printf("Agent: %s\n", answer)
	}
}
