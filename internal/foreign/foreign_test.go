package foreign

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newt/internal/evaluator"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
)

// runWithModules evaluates source in a global environment with every host
// module installed, returning printed output and any evaluation failure.
func runWithModules(t *testing.T, source string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	env := evaluator.NewGlobalEnvironment(&out)
	require.NoError(t, Install(env, nil))

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	require.Empty(t, p.Errors())

	result := evaluator.Eval(program, env)
	if errObj, ok := result.(*object.Error); ok {
		return out.String(), errors.New(errObj.Message)
	}
	return out.String(), nil
}

func TestInstallRegistersModules(t *testing.T) {
	env := object.NewEnvironment()
	require.NoError(t, Install(env, nil))

	for _, name := range ModuleNames() {
		assert.IsType(t, &object.Record{}, env.Lookup(name), "module %s", name)
	}
}

func TestInstallSubset(t *testing.T) {
	env := object.NewEnvironment()
	require.NoError(t, Install(env, []string{"str"}))

	assert.IsType(t, &object.Record{}, env.Lookup("str"))
	assert.Equal(t, object.UNDEFINED, env.Lookup("fs"))
}

func TestInstallUnknownModule(t *testing.T) {
	env := object.NewEnvironment()
	err := Install(env, []string{"str", "nope"})
	require.EqualError(t, err, "unknown host module: nope")
	assert.Equal(t, object.UNDEFINED, env.Lookup("str"))
}

func TestStrModule(t *testing.T) {
	out, err := runWithModules(t, `
print(str.len("hello"), str.indexOf("hello", "ll"), str.indexOf("hello", "zz"))
print(str.toUpper("abc"), str.toLower("ABC"), str.trim("  padded  "))
print(str.substr("hello", 1, 3))
print(str.substr("hello", 0 - 2, 99))
`)
	require.NoError(t, err)
	assert.Equal(t, "5 2 -1\nABC abc padded\nel\nhello\n", out)
}

func TestStrArgumentChecks(t *testing.T) {
	_, err := runWithModules(t, `str.len(5)`)
	require.EqualError(t, err, "argument to `str.len` must be STRING, got INTEGER")

	_, err = runWithModules(t, `str.len()`)
	require.EqualError(t, err, "wrong number of arguments for str.len. got=0, want=1")
}

func TestCryptoModule(t *testing.T) {
	out, err := runWithModules(t, `
print(crypto.md5("abc"))
print(crypto.sha256("abc"))
print(crypto.sha512("abc"))
`)
	require.NoError(t, err)
	assert.Equal(t,
		"900150983cd24fb0d6963f7d28e17f72\n"+
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n"+
			"ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a"+
			"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f\n",
		out)
}

func TestRegexModule(t *testing.T) {
	out, err := runWithModules(t, `
print(regex.matches("abc123", "[0-9]+"), regex.matches("abc", "^[0-9]+$"))
print(regex.replaceAll("a1b22c", "[0-9]+", "#"))
var found = regex.findAll("a1b22c333", "[0-9]+")
print(found.length)
print(found)
`)
	require.NoError(t, err)
	assert.Equal(t, "1 0\na#b#c\n3\n{0: 1, 1: 22, 2: 333, length: 3}\n", out)
}

func TestRegexInvalidPattern(t *testing.T) {
	_, err := runWithModules(t, `regex.matches("x", "[")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestFsModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	source := fmt.Sprintf(`
fs.writeFile(%q, "alpha\n")
fs.appendFile(%q, "beta\n")
print(fs.readFile(%q))
print(fs.exists(%q))
fs.rm(%q)
print(fs.exists(%q))
`, path, path, path, path, path, path)

	out, err := runWithModules(t, source)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n\n1\n0\n", out)
}

func TestFsReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	_, err := runWithModules(t, fmt.Sprintf(`fs.readFile(%q)`, path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestSysEnv(t *testing.T) {
	t.Setenv("NEWT_TEST_VALUE", "on")
	out, err := runWithModules(t, `print(sys.env("NEWT_TEST_VALUE"), sys.env("NEWT_TEST_MISSING"))`)
	require.NoError(t, err)
	assert.Equal(t, "on undefined\n", out)
}

func TestSysArgs(t *testing.T) {
	SetArgs([]string{"one", "two"})
	t.Cleanup(func() { SetArgs(nil) })

	out, err := runWithModules(t, `
print(sys.args.length)
print(sys.args)
`)
	require.NoError(t, err)
	assert.Equal(t, "2\n{0: one, 1: two, length: 2}\n", out)
}

func TestTimeModule(t *testing.T) {
	out, err := runWithModules(t, `
print(0 < time.clock())
time.sleep(1)
`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestTimeSleepRejectsNegative(t *testing.T) {
	_, err := runWithModules(t, `time.sleep(0 - 5)`)
	require.EqualError(t, err, "argument to `time.sleep` must be non-negative, got -5")
}

func TestDbSqliteRoundTrip(t *testing.T) {
	out, err := runWithModules(t, `
var conn = db.open("sqlite3", ":memory:")
db.exec(conn, "CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT, rank INTEGER)")
var ins = db.exec(conn, "INSERT INTO notes (body, rank) VALUES (?, ?), (?, ?)", "alpha", 1, "beta", nothing)
print(ins.rowsAffected, ins.lastInsertId)
var rows = db.query(conn, "SELECT body, rank FROM notes ORDER BY id")
print(rows.length)
print(rows)
var hit = db.query(conn, "SELECT body FROM notes WHERE rank = ?", 1)
print(hit)
db.close(conn)
`)
	require.NoError(t, err)
	assert.Equal(t,
		"2 2\n"+
			"2\n"+
			"{0: {body: alpha, rank: 1}, 1: {body: beta, rank: undefined}, length: 2}\n"+
			"{0: {body: alpha}, length: 1}\n",
		out)
}

func TestDbModuleValidation(t *testing.T) {
	_, err := runWithModules(t, `db.open("noop", "dsn")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open connection")

	_, err = runWithModules(t, `db.query(1)`)
	require.EqualError(t, err, "db.query expects at least 2 arguments: handle, sql")

	_, err = runWithModules(t, `db.close(42)`)
	require.EqualError(t, err, "invalid connection handle: 42")
}

func TestModuleFailureStopsEvaluation(t *testing.T) {
	out, err := runWithModules(t, `
print("before")
str.len(1, 2)
print("after")
`)
	require.EqualError(t, err, "wrong number of arguments for str.len. got=2, want=1")
	assert.Equal(t, "before\n", out)
}
