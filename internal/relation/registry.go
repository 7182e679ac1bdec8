package relation

import (
	"fmt"
	"sync"
	"sync/atomic"

	sorted "github.com/tobshub/go-sortedmap"
)

// Registry owns the shared context tables are created in: the counter
// used to name derived tables, the name-ordered table collection, and
// the diagnostics Reporter. Operators never touch package-level state.
type Registry struct {
	locker   sync.RWMutex
	counter  atomic.Int64
	tables   *sorted.SortedMap[string, *Table]
	Reporter Reporter
}

func NewRegistry(r Reporter) *Registry {
	if r == nil {
		r = LogReporter{}
	}
	return &Registry{
		tables: sorted.New[string, *Table](0, func(a, b *Table) bool {
			return a.Name < b.Name
		}),
		Reporter: r,
	}
}

func (r *Registry) GetLocker() *sync.RWMutex { return &r.locker }

// tempName produces a unique name for a table derived from base.
func (r *Registry) tempName(base string) string {
	return fmt.Sprintf("%s_%d", base, r.counter.Add(1))
}

// Add registers a table under its name, replacing any previous table
// with the same name.
func (r *Registry) Add(t *Table) {
	if !r.tables.Insert(t.Name, t) {
		r.tables.Replace(t.Name, t)
	}
}

func (r *Registry) Get(name string) (*Table, bool) {
	return r.tables.Get(name)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.tables.Get(name)
	return ok
}

// Names lists registered table names in sorted order.
func (r *Registry) Names() []string {
	names := []string{}
	iter, err := r.tables.IterCh()
	if err != nil {
		return names
	}
	defer iter.Close()
	for rec := range iter.Records() {
		names = append(names, rec.Key)
	}
	return names
}
