// Package paths resolves the package root and modlist's XDG directories.
//
// Priority for the package root:
//  1. explicit argument (the --root flag)
//  2. MODLIST_ROOT
//  3. current working directory (UsedFallback reports true)
package paths
