package model

// Replacement records one matched literal argument.
type Replacement struct {
	Function string `msgpack:"function"`
	Original string `msgpack:"original"`
	Value    string `msgpack:"value"`
	// Start and End are the literal's offsets as reported by the parser.
	Start int `msgpack:"start"`
	End   int `msgpack:"end"`
	// Applied is false when the literal carried no position information.
	Applied bool `msgpack:"applied"`
}

// Result is the output of the pass for a file that changed.
type Result struct {
	Code         string        `msgpack:"code"`
	Map          *SourceMap    `msgpack:"map"`
	Replacements []Replacement `msgpack:"replacements"`
}

// Changed reports whether any edit was applied.
func (r *Result) Changed() bool {
	if r == nil {
		return false
	}

	for _, rep := range r.Replacements {
		if rep.Applied {
			return true
		}
	}

	return false
}
