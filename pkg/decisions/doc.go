// Package decisions persists operator choices and replays them on later runs.
//
// A decision is keyed by a stable identifier derived from the package name
// and the node's path relative to the package root (see Key). Records are
// stored one file per key, one value per line. Two kinds of choice share the
// mechanism: folder choices persist option indices, plugin choices persist
// filenames.
//
// Providers compose as cache-then-fallback:
//
//	NewProvider(store, prompter) == Cached(store, Interactive(store, prompter))
//
// The cached strategy validates a stored record against the current options
// before trusting it; a stale record is deleted and the fallback is asked.
// The interactive strategy prompts and writes the valid selection through to
// the store.
package decisions
