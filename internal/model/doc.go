// Package model defines the read-only records the classifier works on:
// truth particles, reconstructed forward tracks, events and the
// classification results handed to outputs.
//
// Particles reference their mothers by identity only. A Table resolves
// those weak references for the lifetime of one event; nothing in this
// package owns a pointer to another particle.
package model
