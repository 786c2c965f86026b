// Package aggregates implements the blog write boundaries on top of GORM.
//
// Implementations compose table-level repos from internal/data/repos and own
// the transaction for every invariant-critical write. Multi-query reads that
// must agree with each other (a post with its counts) go through the same
// transaction runner.
package aggregates
