package store

// StatusOK marks a merge that produced a result. Failed merges record the
// merge error code as their status.
const StatusOK = "ok"

// Outcome is what a merge produced.
//
// Result holds the rendered result for StatusOK and the error message
// otherwise.
type Outcome struct {
	Status string
	Result string
	Passes int
}

// Entry is one recorded merge.
type Entry struct {
	ID            string
	Seq           int64
	Input         map[string]int64 // qualified rule name -> value
	Strict        bool
	CheckUnused   bool
	Zone          string // zone description, see temporal.ParseZone
	Resolver      string
	InputHash     string
	Outcome       Outcome
	EngineVersion string
}
