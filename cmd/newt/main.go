package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"newt/internal/evaluator"
	"newt/internal/foreign"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
	"newt/internal/repl"
	"newt/internal/util"
)

var (
	// Version is stamped at build time via ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"

	help    bool
	version bool
	inline  string
	dumpAST bool
	// config vars
	configPath string
	// logging
	logLevel string
	logFile  string
)

var errColor = color.New(color.FgRed)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// program source
	flag.StringVar(&inline, "e", "", "Evaluate the given program text and exit")
	// parser config
	flag.BoolVar(&dumpAST, "ast", false, "Dump the parsed AST as JSON instead of evaluating")
	// project config
	flag.StringVar(&configPath, "config", "newt.toml", "Project file to load")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	// A .env supplies NEWT_* defaults below the project file and flags.
	_ = godotenv.Load()

	config, err := util.LoadConfig(configPath)
	if err != nil {
		fail(err)
	}

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(firstNonEmpty(logLevel, config.LogLevel, os.Getenv("NEWT_LOG_LEVEL"))),
	}
	logWriter := configureLogWriter(firstNonEmpty(logFile, config.LogFile, os.Getenv("NEWT_LOG_FILE")))
	slog.SetDefault(slog.New(slog.NewJSONHandler(logWriter, loggerOptions)))

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	debugAST := dumpAST || config.DebugAST

	switch {
	case inline != "":
		runProgram("<inline>", inline, flag.Args(), config, debugAST)

	case flag.NArg() > 0:
		path := flag.Arg(0)
		if config.Root != "" && !filepath.IsAbs(path) {
			path = filepath.Join(config.Root, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fail(fmt.Errorf("failed to read %s: %w", path, err))
		}
		runProgram(path, string(data), flag.Args()[1:], config, debugAST)

	default:
		if err := repl.Start(config.Modules); err != nil {
			fail(err)
		}
	}
}

// runProgram parses and evaluates one program with the host modules from
// config installed. Parse and evaluation failures exit with status 1.
func runProgram(name, source string, args []string, config util.Configuration, debugAST bool) {
	slog.Debug("run program", slog.String("name", name), slog.Int("args", len(args)))

	l := lexer.New(source)
	p := parser.New(l)

	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		for _, msg := range p.Errors() {
			errColor.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}

	if debugAST {
		if err := parser.WriteASTJSON(os.Stdout, program); err != nil {
			fail(err)
		}
		return
	}

	foreign.SetArgs(args)
	env := evaluator.NewGlobalEnvironment(os.Stdout)
	if err := foreign.Install(env, config.Modules); err != nil {
		fail(err)
	}

	result := evaluator.Eval(program, env)
	if errObj, ok := result.(*object.Error); ok {
		errColor.Fprintln(os.Stderr, "error: "+errObj.Message)
		if context := util.ContextLines(source, errObj.Line); context != "" {
			fmt.Fprint(os.Stderr, context)
		}
		os.Exit(1)
	}
}

func fail(err error) {
	errColor.Fprintln(os.Stderr, "error: "+err.Error())
	os.Exit(1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func configureLogWriter(path string) *os.File {
	if path == "" {
		return os.Stderr
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr
	}
	logWriter, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", path, err)
		return os.Stderr
	}
	return logWriter
}

func printVersion() {
	fmt.Printf("newt version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: newt [options] [filename [args...]]

Options:
  -e <code>          Evaluate the given program text and exit.
  -ast               Dump the parsed AST as JSON instead of evaluating.
  -config <path>     Project file to load. Default is 'newt.toml'.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.
  -help              Display this help information and exit.
  -version           Display version information and exit.

Details:
This is the Newt programming language.

Examples:
  newt                          Start the interactive shell
  newt myfile.newt              Execute the provided Newt file
  newt myfile.newt arg1 arg2    Execute the file with command-line arguments
  newt -e 'print(1 + 2)'        Evaluate an inline program
  newt -ast myfile.newt         Print the program AST as JSON

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
