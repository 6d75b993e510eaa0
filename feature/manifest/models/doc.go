// Package models defines the typed install-manifest tree and its storage record.
//
// The tree (Manifest → Mod → Submod → File/FileOverride, Mod → OptionGroup → OptionItem)
// is built once by the manifest decoder and treated as read-only afterwards, which lets
// the coverage and reachability checks walk it concurrently.
package models
