// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests are skipped unless QUILL_TEST_DATABASE_URL or DATABASE_URL is set.
// Each test runs inside a transaction that is rolled back when it finishes,
// so tests may call t.Parallel() and share the same tables:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.SetupTestDatabaseSchema(t, db)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx)
//	        // ...
//	    })
//	}
package testdb
