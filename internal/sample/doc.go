// Package sample builds the synthetic one-dimensional specimens the
// instruments scan over.
//
// Every generator overwrites the whole profile on each call. Randomness comes
// only from the rng passed in, so a reseeded rng reproduces the profile
// exactly. Optional height noise never changes a property label.
package sample
