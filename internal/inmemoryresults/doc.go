// Package inmemoryresults provides a simple, thread-safe, in-memory
// implementation of the resultstore.Store interface.
package inmemoryresults
