// Package manifest validates install manifests.
//
// Validation runs in three stages over one document:
//
//  1. Decode parses the bytes strictly. A structural problem (missing key, null value,
//     wrong type, corrupted JSON) aborts the run. Keys that no field claims are collected
//     with their key path and reported without aborting.
//  2. The coverage check (feature/manifest/checks) verifies that every file without a url
//     has an override for each OS and store platform, and that option groups are well formed.
//  3. The reachability check probes every referenced url concurrently.
//
// Stages 2 and 3 run concurrently once decoding succeeds. The result is a Report, which is
// clean only when no unconsumed keys, coverage violations or reachability violations were found.
//
// # Sources
//
// Service reads manifests from any sources.Source: a file or stdin, an object in the
// configured bucket, or a row of the install_manifests table.
//
// # HTTP
//
// Handler exposes the service under /manifest:
//
//	POST /manifest/validate        validate the request body
//	GET  /manifest/schema          the JSON Schema of a manifest
//	GET  /manifest/stored          list manifests in the database
//	GET  /manifest/stored/:name    validate a manifest from the database
//	GET  /manifest/bucket          list manifest objects in the bucket
//	GET  /manifest/bucket/*        validate a manifest object from the bucket
//
// All validation routes accept offline=true and schema=true query flags.
package manifest
