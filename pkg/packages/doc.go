// Package packages handles the top level of the package tree: discovering
// package directories and sanitizing their names before resolution.
package packages
