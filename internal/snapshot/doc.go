// Package snapshot persists a compilation unit (tree, symbol entries and
// types) in msgpack so a front end can hand a built unit to the dump tool.
//
// The tree is stored as nested node records and rebuilt bottom-up through
// the ast constructors, so every decoded unit satisfies the same
// construction invariants as one built in memory.
package snapshot
