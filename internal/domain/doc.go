// Package domain contains the core entities of the blogging API: users, posts
// and the query types used to page through posts. It has no dependencies on
// storage or transport.
package domain
