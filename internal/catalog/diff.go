package catalog

import "sort"

// Changes lists what a deployment of a catalog would do relative to the
// fingerprints recorded at the previous one.
type Changes struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether nothing differs.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// Diff compares previous name → fingerprint against the current catalog.
func Diff(previous map[string]string, current Catalog) Changes {
	var ch Changes
	for name, def := range current {
		old, ok := previous[name]
		switch {
		case !ok:
			ch.Added = append(ch.Added, name)
		case old != Fingerprint(def):
			ch.Changed = append(ch.Changed, name)
		}
	}
	for name := range previous {
		if _, ok := current[name]; !ok {
			ch.Removed = append(ch.Removed, name)
		}
	}
	sort.Strings(ch.Added)
	sort.Strings(ch.Changed)
	sort.Strings(ch.Removed)
	return ch
}
