package testreport

import (
	"fmt"
	"sort"
	"sync"
)

// ClassFailures accumulates every failure recorded for one test class. It is
// safe for concurrent use: AddFailure applies the record append, the count
// increment and the time accumulation as one atomic unit, so readers never
// observe a count or total time that disagrees with the stored records.
//
// Sorting is lazy. Adding a failure marks the collection dirty; any read of
// the failure list re-sorts first, so callers always observe
// (class name, test name) order no matter the insertion order.
type ClassFailures struct {
	className string

	mu        sync.Mutex
	failures  []*TestFailure
	total     int
	totalTime float64
	sorted    bool
}

// NewClassFailures creates an empty group for the given class name.
func NewClassFailures(className string) *ClassFailures {
	return &ClassFailures{
		className: className,
		sorted:    true, // an empty list is sorted
	}
}

// ClassName returns the grouping key. It never changes after construction.
func (c *ClassFailures) ClassName() string {
	return c.className
}

// AddFailure appends a failure and updates the cached totals.
func (c *ClassFailures) AddFailure(failure *TestFailure) error {
	if failure == nil {
		return ErrNilFailure
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = append(c.failures, failure)
	c.total++
	c.totalTime += failure.Time
	c.sorted = false
	return nil
}

// SortFailures re-sorts the internal storage if any failure was added since
// the last sort. Idempotent and safe to call concurrently with AddFailure.
func (c *ClassFailures) SortFailures() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortLocked()
}

func (c *ClassFailures) sortLocked() {
	if !c.sorted {
		sort.SliceStable(c.failures, func(i, j int) bool {
			return c.failures[i].Less(c.failures[j])
		})
		c.sorted = true
	}
}

// Failures returns a sorted, independent snapshot of all failures added so
// far.
func (c *ClassFailures) Failures() []*TestFailure {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sortLocked()
	snapshot := make([]*TestFailure, len(c.failures))
	copy(snapshot, c.failures)
	return snapshot
}

// TotalFailures returns the number of failures added so far.
func (c *ClassFailures) TotalFailures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalTime returns the accumulated execution time of all failures in
// seconds.
func (c *ClassFailures) TotalTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalTime
}

// Equal reports whether both groups share the same class name. Failure
// contents do not affect equality: the class name is the sole grouping key.
func (c *ClassFailures) Equal(other *ClassFailures) bool {
	if other == nil {
		return false
	}
	return c.className == other.className
}

func (c *ClassFailures) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("ClassFailures{className=%q, totalFailures=%d, totalTime=%g}",
		c.className, c.total, c.totalTime)
}

// GroupedFailures is the result of one parse run: every failure group keyed
// and ordered by class name ascending. Read-only after construction.
type GroupedFailures struct {
	groups map[string]*ClassFailures
	names  []string
}

// NewGroupedFailures builds an ordered view over the given groups. Groups
// sharing a class name collapse to the last one supplied.
func NewGroupedFailures(groups ...*ClassFailures) *GroupedFailures {
	byName := make(map[string]*ClassFailures, len(groups))
	for _, g := range groups {
		byName[g.ClassName()] = g
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return &GroupedFailures{groups: byName, names: names}
}

// Len returns the number of distinct failing classes.
func (g *GroupedFailures) Len() int {
	return len(g.names)
}

// ClassNames returns the class names in ascending order.
func (g *GroupedFailures) ClassNames() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

// Group looks up the failures for one class name.
func (g *GroupedFailures) Group(className string) (*ClassFailures, bool) {
	group, ok := g.groups[className]
	return group, ok
}

// Groups returns every group in class-name order.
func (g *GroupedFailures) Groups() []*ClassFailures {
	groups := make([]*ClassFailures, 0, len(g.names))
	for _, name := range g.names {
		groups = append(groups, g.groups[name])
	}
	return groups
}

// TotalFailures sums the failure counts of every group.
func (g *GroupedFailures) TotalFailures() int {
	total := 0
	for _, group := range g.groups {
		total += group.TotalFailures()
	}
	return total
}

// groupAccumulator hands out one ClassFailures per class name during a parse
// run. LoadOrStore gives atomic get-or-create, so parallel workers depositing
// failures for the same class always land on the same group.
type groupAccumulator struct {
	groups sync.Map
}

func (a *groupAccumulator) group(className string) *ClassFailures {
	if existing, ok := a.groups.Load(className); ok {
		return existing.(*ClassFailures)
	}
	group, _ := a.groups.LoadOrStore(className, NewClassFailures(className))
	return group.(*ClassFailures)
}

// result finalizes every group's ordering and returns the class-name-ordered
// view.
func (a *groupAccumulator) result() *GroupedFailures {
	var groups []*ClassFailures
	a.groups.Range(func(_, value any) bool {
		group := value.(*ClassFailures)
		group.SortFailures()
		groups = append(groups, group)
		return true
	})
	return NewGroupedFailures(groups...)
}
