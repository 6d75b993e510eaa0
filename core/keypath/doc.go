// Package keypath describes locations inside a nested JSON document.
//
// A KeyPath is shared by decode-failure reporting and by violation reporting so that
// every finding can be traced back to the exact place in the source manifest.
//
// # Usage
//
//	p := keypath.Root().Key("mods").Index(0).Key("submods")
//	fmt.Println(p) // mods[0].submods
package keypath
