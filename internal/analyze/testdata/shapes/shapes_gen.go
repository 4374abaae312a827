//go:build !derivegen

package shapes

func (r *Record) Repr() string { return "Record(...)" }
