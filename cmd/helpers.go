package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/storage"
)

func storePath() string {
	if p := viper.GetString("db.path"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return "tubescope.sqlite"
	}
	return filepath.Join(home, ".tubescope.sqlite")
}

func catalogCachePath() string {
	if p := viper.GetString("catalog.path"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return "tubescope-catalog.json"
	}
	return filepath.Join(home, ".tubescope-catalog.json")
}

// openStore opens the user-pattern store. With mustExist set, a missing
// database file is an error instead of being created on the fly.
func openStore(mustExist bool) (*storage.DB, error) {
	path := storePath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return nil, errors.New("no user patterns stored yet: " + path)
			}
		} else {
			return nil, err
		}
	}
	return storage.Open(path)
}

// loadCatalog layers the built-in defaults, the cached remote catalog and
// (when includeUser is set) the user-pattern store into one snapshot.
func loadCatalog(ctx context.Context, includeUser bool) ([]pattern.Pattern, error) {
	catalog := pattern.Defaults()

	cached, err := pattern.LoadFile(catalogCachePath())
	if err != nil {
		utils.Log.Warnf("Ignoring unreadable catalog cache: %s", err)
	} else {
		catalog = append(catalog, cached...)
	}

	if includeUser {
		if _, err := os.Stat(storePath()); err == nil {
			db, err := storage.Open(storePath())
			if err != nil {
				return nil, err
			}
			defer db.Close()
			stored, err := db.List(ctx)
			if err != nil {
				return nil, err
			}
			catalog = append(catalog, stored...)
		}
	}
	return catalog, nil
}

// resolveNameKeys turns --names items into unit keys. A bare name selects
// every specifier of that name; "name|specifier" selects one variant.
func resolveNameKeys(catalog []pattern.Pattern, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	units := pattern.Expand(catalog)
	var keys []string
	for _, item := range names {
		if strings.Contains(item, "|") {
			keys = append(keys, item)
			continue
		}
		matched := false
		for _, u := range units {
			if u.Name == item {
				keys = append(keys, u.Key())
				matched = true
			}
		}
		if !matched {
			// An unknown bare name must still narrow the filter. The
			// key form cannot exist for a name no unit carries, so the
			// lookup fails with ErrNoEligible instead of matching all.
			keys = append(keys, item+"|")
		}
	}
	return keys
}
