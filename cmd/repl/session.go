package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bawdo/wincall/builders"
	"github.com/bawdo/wincall/internal/logutil"
	"github.com/bawdo/wincall/managers"
	"github.com/bawdo/wincall/nodes"
	"github.com/bawdo/wincall/parser"
	"github.com/bawdo/wincall/plugins/defaultwindow"
	"github.com/bawdo/wincall/visitors"
	"github.com/ergochat/readline"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

var (
	errNoCall      = errors.New("no window call given")
	errNoConn      = errors.New("not connected (use 'connect <dsn>' first)")
	errNoRegistry  = errors.New("window function registry is not initialized")
	errWindowUsage = errors.New("usage: window on | off | <partition col>... [+col|-col]...")
)

// windowSetting is the default window applied to calls without OVER.
type windowSetting struct {
	plugin *defaultwindow.DefaultWindow
	desc   string
}

// Session holds the REPL state: the registry calls resolve against, the
// FROM table, the active visitor/engine, and the optional default window.
type Session struct {
	registry     *builders.Registry
	table        *nodes.Table // nil renders calls without FROM
	engine       string
	visitor      nodes.Visitor
	parameterize bool
	pretty       bool
	window       *windowSetting // nil when off
	diag         builders.Diagnostics
	commands     []commandEntry // command registry (sorted by prefix length desc)
	conn         *dbConn        // nil when disconnected
	lastDSN      string         // remembers the previous DSN for reconnect
	rl           *readline.Instance
	out          io.Writer // destination for REPL output (default os.Stdout)
}

// NewSession creates a session that resolves calls against reg using the
// given SQL dialect.
func NewSession(engine string, reg *builders.Registry, rl *readline.Instance) *Session {
	s := &Session{
		registry: reg,
		rl:       rl,
		out:      os.Stdout,
	}
	s.setEngine(engine)
	s.initCommands()
	return s
}

func (s *Session) setEngine(engine string) {
	s.engine = engine
	var opts []visitors.Option
	if !s.parameterize {
		opts = append(opts, visitors.WithoutParams())
	}
	switch engine {
	case "mysql":
		s.visitor = visitors.NewMySQLVisitor(opts...)
	case "sqlite":
		s.visitor = visitors.NewSQLiteVisitor(opts...)
	default:
		s.engine = "postgres"
		s.visitor = visitors.NewPostgresVisitor(opts...)
	}
}

// Execute parses and runs a single REPL command. A line that matches no
// command but looks like a call is rendered as an expression.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(line[len(cmd.prefix):])
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}

	if strings.Contains(line, "(") {
		return s.cmdExpr(line)
	}
	word := strings.Fields(line)[0]
	return errors.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// --- Resolution ---

// resolve parses input and builds its window node against the session's
// registry and table. The session diagnostics hold only this call's reports.
func (s *Session) resolve(input string) (*parser.Call, nodes.Node, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, errNoCall
	}
	if s.registry == nil {
		return nil, nil, errNoRegistry
	}
	call, err := parser.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	s.diag.Reset()
	n, err := call.Build(s.registry, &s.diag, s.table)
	if err != nil {
		logutil.BgLogger().Debug("window call rejected",
			zap.String("call", input), zap.Int("reports", s.diag.Len()), zap.Error(err))
		return nil, nil, err
	}
	return call, n, nil
}

// query wraps a resolved call in SELECT [table.*,] call AS name [FROM table]
// with the default window plugin attached when one is set.
func (s *Session) query(call *parser.Call, n nodes.Node) *managers.SelectManager {
	var from nodes.Node
	var projections []nodes.Node
	if s.table != nil {
		from = s.table
		projections = append(projections, s.table.Star())
	}
	projections = append(projections, nodes.NewAliasNode(n, strings.ToLower(call.Name)))

	m := managers.NewSelectManager(from).Select(projections...)
	if s.window != nil {
		m.Use(s.window.plugin)
	}
	return m
}

// printSQL prints a generated statement and any bound params. Multi-line
// statements keep the two-space indent on every line.
func (s *Session) printSQL(sql string, params []any, terminator string) {
	sql = strings.ReplaceAll(sql, "\n", "\n  ")
	_, _ = fmt.Fprintf(s.out, "  %s%s\n", sql, terminator)
	if len(params) > 0 {
		_, _ = fmt.Fprintf(s.out, "  Params: %v\n", params)
	}
}

// --- Command handlers ---

// cmdExpr renders the resolved call on its own, without a SELECT.
func (s *Session) cmdExpr(args string) error {
	_, n, err := s.resolve(args)
	if err != nil {
		return err
	}
	var params []any
	p, isParam := s.visitor.(nodes.Parameterizer)
	if isParam {
		p.Reset()
	}
	sql := n.Accept(s.visitor)
	if isParam && s.parameterize {
		params = p.Params()
	}
	s.printSQL(sql, params, "")
	return nil
}

func (s *Session) cmdSQL(args string) error {
	call, n, err := s.resolve(args)
	if err != nil {
		return err
	}
	v := s.visitor
	if s.pretty {
		v = visitors.NewFormattingVisitor(v)
	}
	sql, params, err := s.query(call, n).ToSQL(v)
	if err != nil {
		return err
	}
	s.printSQL(sql, params, ";")
	return nil
}

func (s *Session) cmdEngine(args string) error {
	name := strings.TrimSpace(strings.ToLower(args))
	if name == "" {
		_, _ = fmt.Fprintf(s.out, "  Engine: %s\n", s.engine)
		return nil
	}
	if !isValidEngine(name) {
		return errors.Errorf("unknown engine %q (choose: postgres, mysql, sqlite)", name)
	}
	s.setEngine(name)
	_, _ = fmt.Fprintf(s.out, "  Engine set to %s\n", s.engine)
	return nil
}

func (s *Session) cmdParams(args string) error {
	switch strings.TrimSpace(strings.ToLower(args)) {
	case "":
		s.parameterize = !s.parameterize
	case "on":
		s.parameterize = true
	case "off":
		s.parameterize = false
	default:
		return errors.New("usage: params [on|off]")
	}
	s.setEngine(s.engine) // recreate visitor with/without parameterization
	if s.parameterize {
		_, _ = fmt.Fprintln(s.out, "  Parameterized queries enabled")
	} else {
		_, _ = fmt.Fprintln(s.out, "  Parameterized queries disabled")
	}
	return nil
}

func (s *Session) cmdFormat(args string) error {
	switch strings.TrimSpace(strings.ToLower(args)) {
	case "":
		s.pretty = !s.pretty
	case "on":
		s.pretty = true
	case "off":
		s.pretty = false
	default:
		return errors.New("usage: format [on|off]")
	}
	if s.pretty {
		_, _ = fmt.Fprintln(s.out, "  Multi-line SQL enabled")
	} else {
		_, _ = fmt.Fprintln(s.out, "  Multi-line SQL disabled")
	}
	return nil
}

// cmdLog shows or changes the log level for the rest of the session.
func (s *Session) cmdLog(args string) error {
	level := strings.TrimSpace(strings.ToLower(args))
	if level == "" {
		_, _ = fmt.Fprintf(s.out, "  Log level: %s\n", logutil.Level())
		return nil
	}
	if err := logutil.SetLevel(level); err != nil {
		return errors.Errorf("unknown log level %q (choose: debug, info, warn, error)", level)
	}
	_, _ = fmt.Fprintf(s.out, "  Log level set to %s\n", logutil.Level())
	return nil
}

func (s *Session) cmdFrom(args string) error {
	name := strings.TrimSpace(args)
	switch {
	case name == "":
		if s.table == nil {
			_, _ = fmt.Fprintln(s.out, "  No table set")
		} else {
			_, _ = fmt.Fprintf(s.out, "  FROM %s\n", s.table.Name)
		}
		return nil
	case strings.EqualFold(name, "none"):
		s.table = nil
		_, _ = fmt.Fprintln(s.out, "  Table cleared")
		return nil
	case strings.ContainsAny(name, " \t,()"):
		return errors.New("usage: from <table> | from none")
	}
	s.table = nodes.NewTable(name)
	_, _ = fmt.Fprintf(s.out, "  Calls now resolve against %q\n", name)
	return nil
}

// cmdWindow configures the default window. Plain words are partition
// columns; +col and -col add ascending and descending order columns.
func (s *Session) cmdWindow(args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		if s.window == nil {
			_, _ = fmt.Fprintln(s.out, "  Default window: off")
		} else {
			_, _ = fmt.Fprintf(s.out, "  Default window: %s\n", s.window.desc)
		}
		return nil
	}
	if len(fields) == 1 {
		switch strings.ToLower(fields[0]) {
		case "off":
			s.window = nil
			_, _ = fmt.Fprintln(s.out, "  Default window disabled")
			return nil
		case "on":
			fields = nil
		}
	}

	var opts []defaultwindow.Option
	var partition []string
	for _, f := range fields {
		switch {
		case f == "+" || f == "-":
			return errWindowUsage
		case strings.HasPrefix(f, "-"):
			opts = append(opts, defaultwindow.WithOrder(f[1:], true))
		case strings.HasPrefix(f, "+"):
			opts = append(opts, defaultwindow.WithOrder(f[1:], false))
		default:
			partition = append(partition, f)
		}
	}
	if len(partition) > 0 {
		opts = append(opts, defaultwindow.WithPartition(partition...))
	}

	dw := defaultwindow.New(opts...)
	s.window = &windowSetting{
		plugin: dw,
		desc:   fmt.Sprintf("%s AS %s", dw.Name, s.describeWindow(dw)),
	}
	_, _ = fmt.Fprintf(s.out, "  Default window: %s\n", s.window.desc)
	return nil
}

// describeWindow renders dw's definition against the current table.
func (s *Session) describeWindow(dw *defaultwindow.DefaultWindow) string {
	core := &nodes.SelectCore{
		Projections: []nodes.Node{nodes.NewRowNumber("ROW_NUMBER")},
	}
	if s.table != nil {
		core.From = s.table
	}
	core, err := dw.TransformSelect(core)
	if err != nil || len(core.Windows) == 0 {
		return "()"
	}
	return visitors.RenderWindowDef(s.displayVisitor(), core.Windows[0])
}

// displayVisitor returns an unparameterized visitor for the current engine.
func (s *Session) displayVisitor() nodes.Visitor {
	switch s.engine {
	case "mysql":
		return visitors.NewMySQLVisitor(visitors.WithoutParams())
	case "sqlite":
		return visitors.NewSQLiteVisitor(visitors.WithoutParams())
	default:
		return visitors.NewPostgresVisitor(visitors.WithoutParams())
	}
}

func (s *Session) makeParamVisitor() nodes.Visitor {
	opts := []visitors.Option{visitors.WithParams()}
	switch s.engine {
	case "mysql":
		return visitors.NewMySQLVisitor(opts...)
	case "sqlite":
		return visitors.NewSQLiteVisitor(opts...)
	default:
		return visitors.NewPostgresVisitor(opts...)
	}
}

// cmdFunctions lists every registered name with its kind and the tables
// that hold it.
func (s *Session) cmdFunctions() error {
	if s.registry == nil {
		return errNoRegistry
	}
	for _, name := range s.registry.Names() {
		var tables []string
		var kind nodes.WindowKind
		if b, ok := s.registry.Find(name); ok {
			tables = append(tables, builders.TablePlain)
			kind = b.Kind()
		}
		if b, ok := s.registry.FindNulls(name); ok {
			tables = append(tables, builders.TableNulls)
			kind = b.Kind()
		}
		_, _ = fmt.Fprintf(s.out, "  %-14s %-11s %s\n", name, kind, strings.Join(tables, ", "))
	}
	return nil
}

func (s *Session) cmdConnect(args string) error {
	dsn := strings.TrimSpace(args)

	if s.conn != nil {
		return errors.Errorf("already connected to %s (use 'disconnect' first)", sanitizeDSN(s.conn.dsn))
	}
	if dsn != "" {
		return s.connectWithDSN(dsn)
	}

	// Interactive: offer reconnect if we have a previous DSN, otherwise wizard.
	if s.lastDSN != "" {
		choice := prompt(s.rl, fmt.Sprintf("Reconnect to %s? (y/n/setup)", sanitizeDSN(s.lastDSN)), "y")
		switch strings.ToLower(choice) {
		case "y", "yes":
			return s.connectWithDSN(s.lastDSN)
		case "s", "setup":
			return s.connectViaWizard()
		default:
			_, _ = fmt.Fprintln(s.out, "  Connect cancelled")
			return nil
		}
	}
	return s.connectViaWizard()
}

func (s *Session) connectWithDSN(dsn string) error {
	conn, err := connect(s.engine, dsn)
	if err != nil {
		return errors.Annotate(err, "connect")
	}
	s.attach(conn)
	return nil
}

// attach installs an open connection on the session.
func (s *Session) attach(conn *dbConn) {
	s.conn = conn
	s.lastDSN = conn.dsn
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", sanitizeDSN(conn.dsn), conn.engine)
}

func (s *Session) connectViaWizard() error {
	var dsn string
	switch s.engine {
	case "sqlite":
		dsn = buildSQLiteDSN(s.rl)
	case "mysql":
		dsn = buildMySQLDSN(s.rl)
	default:
		dsn = buildPostgresDSN(s.rl)
	}
	if dsn == "" {
		_, _ = fmt.Fprintln(s.out, "  No connection configured")
		return nil
	}
	_, _ = fmt.Fprintf(s.out, "  DSN: %s\n", sanitizeDSN(dsn))
	return s.connectWithDSN(dsn)
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	dsn := sanitizeDSN(s.conn.dsn)
	if err := s.conn.close(); err != nil {
		return errors.Annotate(err, "disconnect")
	}
	s.conn = nil
	_, _ = fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// cmdRun executes the call's SELECT against the connected database,
// always binding literals as parameters.
func (s *Session) cmdRun(args string) error {
	if s.conn == nil {
		return errNoConn
	}
	if s.conn.engine != s.engine {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but engine is set to %s\n", s.conn.engine, s.engine)
	}
	call, n, err := s.resolve(args)
	if err != nil {
		return err
	}
	sqlStr, params, err := s.query(call, n).ToSQL(s.makeParamVisitor())
	if err != nil {
		return err
	}
	s.printSQL(sqlStr, params, ";")

	result, err := s.conn.execQuery(sqlStr, params)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, result)
	return nil
}

// cmdAST prints the resolved node: the table it came from, each operand
// including synthesized ones, and the window it is bound to.
func (s *Session) cmdAST(args string) error {
	call, n, err := s.resolve(args)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  Engine: %s\n", s.engine)
	tableName := builders.TablePlain
	if call.HasNullsClause() {
		tableName = builders.TableNulls
	}
	_, _ = fmt.Fprintf(s.out, "  Table:  %s\n", tableName)
	if s.table != nil {
		_, _ = fmt.Fprintf(s.out, "  FROM:   %s\n", s.table.Name)
	}
	s.printASTNode(n)
	return nil
}

// cmdDot writes the call's SELECT as Graphviz DOT, after the default window
// is applied. "dot <call> > file" writes to file instead of the terminal.
func (s *Session) cmdDot(args string) error {
	input, fpath, toFile := strings.Cut(args, ">")
	fpath = strings.TrimSpace(fpath)
	if toFile && fpath == "" {
		return errors.New("usage: dot <call> [> <filepath>]")
	}
	call, n, err := s.resolve(input)
	if err != nil {
		return err
	}

	core := s.query(call, n).CloneCore()
	if s.window != nil {
		if core, err = s.window.plugin.TransformSelect(core); err != nil {
			return err
		}
	}
	dv := visitors.NewDotVisitor()
	core.Accept(dv)

	if !toFile {
		_, _ = fmt.Fprint(s.out, dv.ToDot())
		return nil
	}
	if err := os.WriteFile(fpath, []byte(dv.ToDot()), 0600); err != nil {
		return errors.Annotate(err, "failed to write DOT file")
	}
	_, _ = fmt.Fprintf(s.out, "  Wrote DOT to %s\n", fpath)
	return nil
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprintln(s.out, `
  Window calls:
    <call>                    Render a call, e.g. LAG(salary, 1, 0) OVER w
    sql <call>                Render SELECT [table.*,] <call> [FROM table]
    ast <call>                Show the resolved node and its operands
    dot <call> [> file]       Graphviz DOT of the SELECT (stdout or file)
    functions                 List registered window functions

  Call syntax:
    NAME(args) [FROM FIRST|LAST] [RESPECT|IGNORE NULLS] [OVER w | OVER (...)]
    RESPECT/IGNORE NULLS resolves against the nulls table; FROM is
    only accepted after NTH_VALUE.

  Session:
    from <table>              Qualify columns and add FROM <table>
    from none                 Render calls without a table
    window <cols> [+c|-c]     Bind calls without OVER to WINDOW "w"
    window on | off           Empty default window / disable it
    engine <name>             Switch dialect (postgres, mysql, sqlite)
    params [on|off]           Toggle bind parameters
    format [on|off]           Toggle multi-line output for sql
    log [level]               Show or set the log level

  Database:
    connect [dsn]             Connect (wizard when no DSN is given)
    disconnect                Close the connection
    run <call>                Execute the SELECT and print the rows

  Other:
    help                      Show this help
    exit / quit               Leave the REPL`)
}
