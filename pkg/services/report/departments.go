package report

import (
	"sort"
	"sync"
)

// Departments unifies department identities seen across revenue, contract,
// salary and history sources for one report run. Codes are whitespace-trimmed;
// the first source to supply a non-empty title for a code wins and later
// sources never overwrite it. Updates are serialized so aggregators may run
// concurrently per range.
type Departments struct {
	mu     sync.Mutex
	titles map[string]string
}

func NewDepartments() *Departments {
	return &Departments{titles: make(map[string]string)}
}

// Observe registers a department code and, when non-empty, its display title.
// It returns the canonical (trimmed) key, which is empty when the raw code
// carries no identity at all.
func (d *Departments) Observe(rawCode any, title string) string {
	code := trimCode(rawCode)
	if code == "" {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.titles[code]; !ok {
		d.titles[code] = ""
	}
	if title != "" && d.titles[code] == "" {
		d.titles[code] = title
	}
	return code
}

// Title returns the display title for a code, falling back to the code itself
// when no source ever supplied one.
func (d *Departments) Title(code string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t := d.titles[code]; t != "" {
		return t
	}
	return code
}

// Untitled lists codes that never received a title, in ascending order.
// Callers surface these as warnings; the code doubles as the display title.
func (d *Departments) Untitled() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var codes []string
	for code, title := range d.titles {
		if title == "" {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
