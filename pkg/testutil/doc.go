// Package testutil provides utilities for testing modlist components.
//
// Key components:
//   - TestEnvironment: package root, decision store and filesystem for one test
//   - FileTree: declarative directory layout for input trees
//   - ScriptedPrompter: answers decision prompts from a fixed script
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when the code under test renames directories or
//     depends on modification times
//   - All test data should be defined inline, not in external files
package testutil
