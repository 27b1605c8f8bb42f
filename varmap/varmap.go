// Package varmap implements the ordered name -> value container used for
// global constants, script variables and macro parameter scopes
package varmap

import (
	"sort"

	"github.com/lunfardo314/unitrie/common"
	"github.com/trackscript/easyfun/value"
)

type Var struct {
	Name  string
	Value value.Value
}

// Map keeps its variables sorted by name
type Map struct {
	list   []Var
	frozen bool
}

func New(capacity ...int) *Map {
	c := 0
	if len(capacity) > 0 {
		c = capacity[0]
	}
	return &Map{list: make([]Var, 0, c)}
}

// FromMap builds a map from an unordered go map
func FromMap(m map[string]value.Value) *Map {
	ret := New(len(m))
	for name, v := range m {
		ret.list = append(ret.list, Var{Name: name, Value: v})
	}
	sort.Slice(ret.list, func(i, j int) bool {
		return ret.list[i].Name < ret.list[j].Name
	})
	return ret
}

// Freeze makes the map read-only, any later insertion panics
func (m *Map) Freeze() {
	m.frozen = true
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.list)
}

// Find returns the index of the variable or the insertion point when not found
func (m *Map) Find(name string) (int, bool) {
	if m == nil {
		return 0, false
	}
	idx := sort.Search(len(m.list), func(i int) bool {
		return m.list[i].Name >= name
	})
	return idx, idx < len(m.list) && m.list[idx].Name == name
}

// Get returns a copy of the stored value
func (m *Map) Get(name string) (value.Value, bool) {
	idx, found := m.Find(name)
	if !found {
		return value.Unset, false
	}
	return m.list[idx].Value, true
}

// Insert returns the variable with the given name, creating an unset one if necessary.
// The returned pointer is valid until the next insertion
func (m *Map) Insert(name string) (*Var, bool) {
	common.Assert(!m.frozen, "map is frozen, can't insert '%s'", name)
	idx, found := m.Find(name)
	if found {
		return &m.list[idx], false
	}
	m.list = append(m.list, Var{})
	copy(m.list[idx+1:], m.list[idx:])
	m.list[idx] = Var{Name: name}
	return &m.list[idx], true
}

// Set assigns the value, inserting the variable in order when it is new
func (m *Map) Set(name string, v value.Value) {
	p, _ := m.Insert(name)
	p.Value = v
}

// Range iterates in name order until f returns false
func (m *Map) Range(f func(name string, v value.Value) bool) {
	if m == nil {
		return
	}
	for _, v := range m.list {
		if !f(v.Name, v.Value) {
			return
		}
	}
}

func (m *Map) Names() []string {
	ret := make([]string, 0, m.Len())
	m.Range(func(name string, _ value.Value) bool {
		ret = append(ret, name)
		return true
	})
	return ret
}
