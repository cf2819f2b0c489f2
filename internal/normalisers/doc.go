// Package normalisers provides implementations of the Normaliser
// interface for the supported policy document formats. Each normaliser
// knows how to extract text content from a specific file extension.
//
// Normalisers are registered with the Registry at startup; selection is
// by the document's file extension.
package normalisers
