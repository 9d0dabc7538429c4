package httpproto

// BodyKind tags which variant a Body value holds. Representing the three
// possibilities as a closed tagged union (rather than overloading a string
// to sometimes mean "this is a file path") keeps handler code from ever
// confusing an in-memory payload with a spool-file reference.
type BodyKind int

const (
	// BodyAbsent means the request carried no body at all.
	BodyAbsent BodyKind = iota
	// BodyMemory means Data holds the body bytes directly.
	BodyMemory
	// BodyFile means Path names a spooled temp file holding the body.
	BodyFile
)

// Body is the three-variant body representation the data model
// requires: {absent, in-memory bytes, path to a spooled file}.
type Body struct {
	Kind BodyKind
	Data []byte
	Path string
}

// Len reports the declared/known length of the body when it is held in
// memory; it is 0 for BodyAbsent and unknown (not disk-stat'd) for
// BodyFile — callers needing the file's size should stat Path themselves.
func (b Body) Len() int {
	if b.Kind == BodyMemory {
		return len(b.Data)
	}
	return 0
}
