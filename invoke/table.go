package invoke

import (
	"reflect"
	"slices"
	"sync"

	"converter-kit/descriptor"
)

// Table holds the callable members of one owner, grouped by name in
// registration order.
type Table struct {
	mu      sync.RWMutex
	members map[string][]*descriptor.Callable
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{members: make(map[string][]*descriptor.Callable)}
}

func (t *Table) add(c *descriptor.Callable) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.members[c.Name] = append(t.members[c.Name], c)
}

// Register adds a function under name. Several functions may share a name;
// they are tried in the order they were registered.
func (t *Table) Register(name string, fn any) error {
	c, err := descriptor.NewFunc(name, fn)
	if err != nil {
		return err
	}

	t.add(c)

	return nil
}

// RegisterMethod adds a method expression such as (*T).Name under name.
func (t *Table) RegisterMethod(name string, method any) error {
	c, err := descriptor.NewMethod(name, method)
	if err != nil {
		return err
	}

	t.add(c)

	return nil
}

// MustRegister is like Register but panics on error.
func (t *Table) MustRegister(name string, fn any) *Table {
	if err := t.Register(name, fn); err != nil {
		panic(err)
	}

	return t
}

// MustRegisterMethod is like RegisterMethod but panics on error.
func (t *Table) MustRegisterMethod(name string, method any) *Table {
	if err := t.RegisterMethod(name, method); err != nil {
		panic(err)
	}

	return t
}

// Members returns the callables registered under name.
func (t *Table) Members(name string) []*descriptor.Callable {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.members[name])
}

// Names returns the member names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.members))
	for name := range t.members {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

var methodTables sync.Map // reflect.Type -> *Table

// TableOf returns the exported methods of rt. For a non-pointer type the
// methods of *rt are included; their Owner is *rt. Interface types have no
// callable methods and yield an empty table.
func TableOf(rt reflect.Type) *Table {
	if cached, ok := methodTables.Load(rt); ok {
		return cached.(*Table)
	}

	table := NewTable()

	if rt.Kind() != reflect.Interface {
		for i := range rt.NumMethod() {
			table.add(descriptor.FromMethod(rt.Method(i)))
		}

		if rt.Kind() != reflect.Ptr {
			ptr := reflect.PointerTo(rt)
			for i := range ptr.NumMethod() {
				m := ptr.Method(i)
				if _, ok := rt.MethodByName(m.Name); !ok {
					table.add(descriptor.FromMethod(m))
				}
			}
		}
	}

	cached, _ := methodTables.LoadOrStore(rt, table)

	return cached.(*Table)
}
