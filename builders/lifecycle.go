package builders

import (
	"github.com/bawdo/wincall/internal/logutil"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// defaultRegistry is written only by Init and Cleanup. Callers must finish
// Init before any lookup starts and must stop all lookups before Cleanup;
// nothing here locks.
var defaultRegistry *Registry

// Init builds the default registry. Calling it again after a successful
// Init does nothing. If it fails, no registry is installed.
func Init() error {
	if defaultRegistry != nil {
		return nil
	}
	reg, err := NewRegistry(DefaultEntries(), DefaultNullsEntries())
	if err != nil {
		logutil.BgLogger().Error("init window function registry failed", zap.Error(err))
		return errors.Trace(err)
	}
	logRegistrations(TablePlain, reg.Entries())
	logRegistrations(TableNulls, reg.NullsEntries())
	defaultRegistry = reg
	return nil
}

func logRegistrations(tableName string, entries []Entry) {
	logger := logutil.BgLogger()
	for _, e := range entries {
		logger.Debug("register window function",
			zap.String("table", tableName),
			zap.String("name", e.Name),
			zap.Stringer("kind", e.Builder.Kind()))
	}
}

// Cleanup releases the default registry's tables. Builders stay valid;
// lookups report not found until Init runs again.
func Cleanup() {
	if defaultRegistry == nil {
		return
	}
	defaultRegistry.release()
	defaultRegistry = nil
	logutil.BgLogger().Info("window function registry released")
}

// Default returns the registry installed by Init, or nil.
func Default() *Registry {
	return defaultRegistry
}

// FindBuilder looks name up in the default plain table.
func FindBuilder(name string) (*Builder, bool) {
	return defaultRegistry.Find(name)
}

// FindBuilderNulls looks name up in the default nulls table.
func FindBuilderNulls(name string) (*Builder, bool) {
	return defaultRegistry.FindNulls(name)
}
