// Package analytics implements the statistical engine over price-bar
// records: period returns, historical volatility and pairwise return
// correlation.
//
// Every function is a pure, synchronous transformation over immutable
// inputs. No state survives a call and repeated calls with identical
// inputs produce identical outputs, so concurrent callers analyzing
// different symbols or snapshots never interfere.
//
// Arithmetic failures (division by a zero close, zero variance, a
// reduction over an empty series) surface as *ComputationError rather
// than being coerced to zero; see errors.go for the taxonomy.
package analytics
