// Package buildinput defines the immutable build input set: the source
// selection, workspace metadata, platform-conditional native dependencies,
// and build-time tool dependencies shared by both build phases. It also
// derives the two content keys that drive caching — the dependency key
// (everything except the program's own source) and the full package key.
package buildinput
