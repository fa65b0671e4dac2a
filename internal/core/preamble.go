package core

// Preamble accumulates the include lines of one emitted file. Lines keep
// the order they were first added in and are never duplicated.
type Preamble struct {
	lines []string
	seen  map[string]bool
}

func NewPreamble() *Preamble {
	return &Preamble{seen: map[string]bool{}}
}

func (p *Preamble) Add(line string) {
	if p.seen[line] {
		return
	}
	p.seen[line] = true
	p.lines = append(p.lines, line)
}

// Include adds "#include <header>".
func (p *Preamble) Include(header string) {
	p.Add("#include <" + header + ">")
}

func (p *Preamble) Lines() []string {
	return append([]string(nil), p.lines...)
}
