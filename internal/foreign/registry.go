package foreign

import (
	"fmt"
	"log/slog"
	"sort"

	"newt/internal/object"
)

// moduleBuilders maps each installable module to its constructor. A module
// is a record whose fields are host functions; programs reach them with
// member calls like fs.readFile(path).
var moduleBuilders = map[string]func() *object.Record{
	"fs":     newFsModule,
	"db":     newDbModule,
	"str":    newStrModule,
	"time":   newTimeModule,
	"sys":    newSysModule,
	"crypto": newCryptoModule,
	"regex":  newRegexModule,
}

// ModuleNames returns every installable module name, sorted.
func ModuleNames() []string {
	names := make([]string, 0, len(moduleBuilders))
	for name := range moduleBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install registers the named host modules in env. An empty list installs
// all of them. Unknown names fail before anything is registered.
func Install(env *object.Environment, names []string) error {
	if len(names) == 0 {
		names = ModuleNames()
	}

	for _, name := range names {
		if _, ok := moduleBuilders[name]; !ok {
			return fmt.Errorf("unknown host module: %s", name)
		}
	}

	for _, name := range names {
		slog.Debug("install host module", slog.String("module", name))
		env.Register(name, moduleBuilders[name]())
	}

	return nil
}
