// Package resolver turns a package root into the set of install roots and
// plugins that go into the manifest.
//
// Resolution is a breadth-first walk over a FIFO worklist of
// types.TraversalNode values. Every dequeued node is classified exactly once:
//
//  1. A single option directory whose name starts with the core prefix is
//     selected without asking.
//  2. Otherwise, any option directories make the node a choice node; the
//     decision provider supplies the selection, and an empty selection skips
//     the branch.
//  3. Otherwise a recursive scan looking for content files and data folders
//     decides whether the node is terminal. Terminal nodes contribute install
//     roots and plugins and are not expanded.
//  4. Otherwise subdirectories are enqueued unchanged (pass-through), or the
//     branch ends (dead end).
//
// Children are always enqueued in lexical order, so the same tree and the
// same stored decisions produce the same result on every run.
package resolver
