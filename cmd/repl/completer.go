package main

import (
	"sort"
	"strings"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand      completionContext = iota // start of line or partial command
	contextNone                                  // nothing to offer
	contextTableName                             // after from
	contextCall                                  // inside a window call
	contextWindowColumn                          // after window
	contextEngine                                // after engine
	contextToggle                                // after params
	contextLogLevel                              // after log
)

var (
	engineNames  = []string{"mysql", "postgres", "sqlite"}
	toggleValues = []string{"off", "on"}
	logLevels    = []string{"debug", "error", "info", "warn"}
	callKeywords = []string{
		"AND", "ASC", "BETWEEN", "BY", "CURRENT", "DESC", "FIRST",
		"FOLLOWING", "FROM", "IGNORE", "LAST", "NULL", "NULLS", "ORDER",
		"OVER", "PARTITION", "PRECEDING", "RANGE", "RESPECT", "ROW",
		"ROWS", "UNBOUNDED",
	}
)

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = c.completeCommands(prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextCall:
		candidates = c.completeCall(prefix)
	case contextWindowColumn:
		candidates = filterPrefix(append(c.currentColumns(), "off", "on"), prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextToggle:
		candidates = filterPrefix(toggleValues, prefix)
	case contextLogLevel:
		candidates = filterPrefix(logLevels, prefix)
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		// Function names already end in "(".
		if !strings.HasSuffix(cand, "(") {
			suffix += " "
		}
		newLine = append(newLine, []rune(suffix))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}

	// A bare call is being typed.
	if strings.Contains(line, "(") {
		return completeCallArgs(line)
	}
	return contextCommand, strings.TrimSpace(line)
}

// completeCommands returns command names and function names matching the
// prefix, since a bare call is also valid input.
func (c *replCompleter) completeCommands(prefix string) []string {
	candidates := filterPrefix(c.sess.commandNames(), prefix)
	if prefix != "" {
		candidates = append(candidates, filterPrefix(c.functionNames(), prefix)...)
	}
	return candidates
}

// completeTableNames returns the current table and DB table names matching prefix.
func (c *replCompleter) completeTableNames(prefix string) []string {
	names := []string{"none"}
	if c.sess.table != nil {
		names = append(names, c.sess.table.Name)
	}
	if c.sess.conn != nil {
		names = append(names, c.sess.conn.schemaTables()...)
	}
	names = dedup(names)
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// completeCall offers table.column after a dot, otherwise function names,
// current-table columns and call keywords.
func (c *replCompleter) completeCall(prefix string) []string {
	if tableName, _, ok := strings.Cut(prefix, "."); ok {
		var candidates []string
		if c.sess.conn != nil {
			for _, col := range c.sess.conn.schemaColumns(tableName) {
				candidates = append(candidates, tableName+"."+col)
			}
		}
		return filterPrefix(candidates, prefix)
	}

	candidates := filterPrefix(c.functionNames(), prefix)
	candidates = append(candidates, filterPrefix(c.currentColumns(), prefix)...)
	if prefix != "" {
		candidates = append(candidates, filterPrefix(callKeywords, prefix)...)
	}
	return candidates
}

// functionNames returns every registered window function as "NAME(".
func (c *replCompleter) functionNames() []string {
	if c.sess.registry == nil {
		return nil
	}
	names := c.sess.registry.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + "("
	}
	return out
}

// currentColumns returns the FROM table's columns when connected.
func (c *replCompleter) currentColumns() []string {
	if c.sess.table == nil || c.sess.conn == nil {
		return nil
	}
	return c.sess.conn.schemaColumns(c.sess.table.Name)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes duplicate strings.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the text after the last space, tab, comma or open paren.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " \t,("); i >= 0 {
		return s[i+1:]
	}
	return s
}
