// REPL binary for resolving window-function calls into SQL.
//
// Configuration is layered: built-in defaults, then a YAML file given with
// --config, then WINCALL_* environment variables, then flags. DATABASE_URL
// is used when no DSN is configured.
//
// Usage:
//
//	go run ./cmd/repl --engine mysql --dsn 'root@tcp(localhost:3306)/hr'
package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"os/user"
	"strings"

	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/internal/logutil"
	"github.com/ergochat/readline"
	"github.com/pingcap/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const replPrompt = "wincall> "

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "wincall: %v\n", err)
		return 2
	}
	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wincall: %v\n", err)
		return 2
	}
	if err := logutil.InitLogger(logutil.NewLogConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)); err != nil {
		fmt.Fprintf(os.Stderr, "wincall: init logger: %v\n", err)
		return 1
	}

	if err := builders.Init(); err != nil {
		logutil.BgLogger().Error("window function registry unavailable", zap.Error(err))
		return 1
	}
	defer builders.Cleanup()

	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          replPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init: %v\n", err)
		return 1
	}
	defer func() { _ = rl.Close() }()

	sess := NewSession(cfg.Engine, builders.Default(), rl)
	if cfg.Parameterize {
		sess.parameterize = true
		sess.setEngine(cfg.Engine)
	}

	// The completer needs the session, so it is installed after creation.
	_ = rl.SetConfig(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if cfg.DSN != "" {
		if err := sess.Execute("connect " + cfg.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: connect failed: %v\n", err)
		}
	}

	fmt.Printf("\nwincall (%s) - type 'help' for commands, 'exit' to quit\n\n", sess.engine)

	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	if sess.conn != nil {
		_ = sess.conn.close()
	}
	fmt.Println()
	return 0
}

// prompt prints a label with an optional default and returns the user's input
// (or the default if they press enter).
func prompt(rl *readline.Instance, label, defaultVal string) string {
	if rl == nil {
		return defaultVal
	}
	if defaultVal != "" {
		rl.SetPrompt(fmt.Sprintf("  %s [%s]: ", label, defaultVal))
	} else {
		rl.SetPrompt(fmt.Sprintf("  %s: ", label))
	}
	defer rl.SetPrompt(replPrompt)
	line, err := rl.ReadLine()
	if err != nil {
		return defaultVal
	}
	val := strings.TrimSpace(line)
	if val == "" {
		return defaultVal
	}
	return val
}

func buildSQLiteDSN(rl *readline.Instance) string {
	return prompt(rl, "Database path", ":memory:")
}

func buildPostgresDSN(rl *readline.Instance) string {
	defaultUser := "postgres"
	if u, err := user.Current(); err == nil && u.Username != "" {
		defaultUser = u.Username
	}

	dbUser := prompt(rl, "User", defaultUser)
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "5432")
	dbName := prompt(rl, "Database", dbUser)
	sslMode := prompt(rl, "SSL mode (disable/require/verify-full)", "disable")

	userInfo := url.User(dbUser)
	if dbPass != "" {
		userInfo = url.UserPassword(dbUser, dbPass)
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     host + ":" + port,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

func buildMySQLDSN(rl *readline.Instance) string {
	dbUser := prompt(rl, "User", "root")
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "3306")
	dbName := prompt(rl, "Database", "")
	if dbName == "" {
		return ""
	}

	// user:pass@tcp(host:port)/dbname
	auth := dbUser
	if dbPass != "" {
		auth += ":" + dbPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s", auth, host, port, dbName)
}
