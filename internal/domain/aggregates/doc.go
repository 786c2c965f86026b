// Package aggregates defines the write boundaries of the blog core and the
// typed error taxonomy shared by every layer above the store.
//
// Contracts here stay free of persistence and transport details.
package aggregates
