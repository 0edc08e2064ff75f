// Package runtime implements the translation engine.
//
// The engine is a pure, synchronous fold over the stages of a resolved source
// profile. Each stage is split into one or more destination phases, exit
// triggers are translated into exit targets, and the assembled document is
// checked against the destination bounds before it is returned. Nothing in
// this package performs I/O.
package runtime
