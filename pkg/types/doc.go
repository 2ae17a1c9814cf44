// Package types defines the core values passed between modlist components:
// traversal nodes produced by the resolver, the resolved asset and plugin
// sets it accumulates, and the filesystem abstraction every component uses.
package types
