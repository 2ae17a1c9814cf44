// Package assets knows what the input tree looks like: which directories are
// options, which files are content files, and which folders hold data.
//
// Scanner lists directories through an LRU cache so the resolver's
// classification pass and the terminal scans that follow it do not read the
// same directory twice. Classify turns a terminal scan into install roots and
// SelectPlugins settles which content files of a terminal node are kept.
package assets
