package gconf

import (
	"sort"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

// Initializer fulfils the bazaar.Initializer interface to load the
// configuration of registered packages from the genesis file.
type Initializer struct {
	confs map[string]func() Configuration
}

var _ bazaar.Initializer = (*Initializer)(nil)

// NewInitializer returns an initializer without any package registered.
func NewInitializer() *Initializer {
	return &Initializer{confs: make(map[string]func() Configuration)}
}

// Register declares the configuration of a package. If the genesis does not
// provide a configuration for it, defaults is stored. Genesis values are
// decoded on top of the defaults.
func (i *Initializer) Register(pkg string, defaults func() Configuration) *Initializer {
	if _, ok := i.confs[pkg]; ok {
		panic("configuration already registered: " + pkg)
	}
	i.confs[pkg] = defaults
	return i
}

// FromGenesis stores the configuration of every registered package.
func (i *Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	pkgs := make([]string, 0, len(i.confs))
	for pkg := range i.confs {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		defaults := i.confs[pkg]
		conf := defaults()
		err := InitConfig(db, opts, pkg, conf)
		if err == nil {
			continue
		}
		if !errors.ErrNotFound.Is(err) {
			return err
		}
		if err := Save(db, pkg, defaults()); err != nil {
			return errors.Wrapf(err, "save default configuration for %s", pkg)
		}
	}
	return nil
}
