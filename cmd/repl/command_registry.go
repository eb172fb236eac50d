package main

import (
	"sort"
	"strings"

	"github.com/pingcap/errors"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- window calls ---
		{prefix: "sql ", handler: s.cmdSQL, completer: completeCallArgs},
		{prefix: "tosql ", handler: s.cmdSQL, completer: completeCallArgs, hidden: true},
		{prefix: "ast ", handler: s.cmdAST, completer: completeCallArgs},
		{prefix: "dot ", handler: s.cmdDot, completer: completeCallArgs},
		{prefix: "expr ", handler: s.cmdExpr, completer: completeCallArgs, hidden: true},
		{prefix: "functions", handler: func(_ string) error { return s.cmdFunctions() }},
		{prefix: "sql", handler: usage("sql <call>")},
		{prefix: "ast", handler: usage("ast <call>")},
		{prefix: "dot", handler: usage("dot <call> [> <filepath>]")},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- session ---
		{prefix: "from ", handler: s.cmdFrom, completer: completeTableArgs},
		{prefix: "from", handler: s.cmdFrom},
		{prefix: "window ", handler: s.cmdWindow, completer: completeWindowArgs},
		{prefix: "window", handler: s.cmdWindow},
		{prefix: "engine ", handler: s.cmdEngine, completer: completeEngineArgs},
		{prefix: "engine", handler: s.cmdEngine},
		{prefix: "params ", handler: s.cmdParams, completer: completeToggleArgs},
		{prefix: "params", handler: s.cmdParams},
		{prefix: "parameterize", handler: s.cmdParams, hidden: true},
		{prefix: "format ", handler: s.cmdFormat, completer: completeToggleArgs},
		{prefix: "format", handler: s.cmdFormat},
		{prefix: "log ", handler: s.cmdLog, completer: completeLogArgs},
		{prefix: "log", handler: s.cmdLog},

		// --- database connectivity ---
		{prefix: "connect ", handler: s.cmdConnect},
		{prefix: "connect", handler: s.cmdConnect},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "run ", handler: s.cmdRun, completer: completeCallArgs},
		{prefix: "exec ", handler: s.cmdRun, completer: completeCallArgs, hidden: true},
		{prefix: "run", handler: usage("run <call>")},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

func usage(text string) func(string) error {
	return func(string) error { return errors.New("usage: " + text) }
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	for _, extra := range []string{"exit", "quit"} {
		if !seen[extra] {
			names = append(names, extra)
		}
	}
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeCallArgs completes function names, columns and call keywords
// inside a window call.
func completeCallArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") || strings.HasSuffix(args, "(") || strings.HasSuffix(args, ",") {
		return contextCall, ""
	}
	return contextCall, lastToken(args)
}

// completeTableArgs completes the single table name taken by from.
func completeTableArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if strings.Contains(arg, " ") {
		return contextNone, ""
	}
	return contextTableName, arg
}

// completeWindowArgs completes column names, keeping a leading +/- order
// marker out of the prefix.
func completeWindowArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		return contextWindowColumn, ""
	}
	last := strings.TrimLeft(lastToken(args), "+-")
	return contextWindowColumn, last
}

// completeEngineArgs handles completion for the engine command.
func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// completeLogArgs completes log level names.
func completeLogArgs(args string) (completionContext, string) {
	return contextLogLevel, strings.TrimSpace(args)
}

// completeToggleArgs completes on/off.
func completeToggleArgs(args string) (completionContext, string) {
	return contextToggle, strings.TrimSpace(args)
}
