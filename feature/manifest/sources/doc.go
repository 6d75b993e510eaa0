// Package sources reads raw install manifest documents.
//
// A manifest can come from a local file, from stdin ("-"), from an object in the
// configured bucket, or from a row of the install_manifests table. Every source returns
// the document bytes untouched; decoding happens in feature/manifest.
package sources
