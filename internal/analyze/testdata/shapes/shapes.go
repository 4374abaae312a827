package shapes

// Record is a plain annotated record.
//
//derive:repr,eq
//derive:class get_all
type Record struct {
	//derive:kw_only
	A, B int `derive:"default=1"`
	c    string
	_    int
}

// Add is an operator delegate.
func (r Record) Add(other Record) Record {
	return Record{A: r.A + other.A}
}

// Plain has no directives and is ignored.
type Plain struct{ X int }

type (
	// Color is not a struct.
	//
	//derive:repr
	Color int
)
