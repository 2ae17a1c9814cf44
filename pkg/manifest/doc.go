// Package manifest compiles a resolution into the customization document
// handed to the configurator, and writes it with backup rotation.
//
// The document is TOML:
//
//	[[Customizations]]
//	listName = "expanded-vanilla"
//	remove = ["Video\\bethesda logo.bik", "Video\\mw_logo.bik"]
//	removeData = [...]        # only when the data exclusion file has entries
//	removeContent = [...]     # only when the content exclusion file has entries
//
//	[[Customizations.insert]]
//	insertBefore = "Tools\\MOMWToolsPackCustom"
//	paths = [...]
//
//	[[Customizations.insertContent]]
//	insertBefore = "AttendMe.omwscripts"
//	plugins = [...]
//
// Every string, path entries and exclusion entries alike, is written as a
// basic string with its backslashes doubled.
package manifest
