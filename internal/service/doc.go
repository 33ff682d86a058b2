// Package service contains the use cases that need more than a single store
// call. PostService owns the ownership rules for posts: updates and deletes
// lock the row, compare the owner and mutate inside one transaction.
//
// Service methods return *apperr.Error values for outcomes a client may see
// (not found, not owner, invalid input). Anything else comes back as a
// *ServiceError, which the API layer masks.
package service
