// Package directory manages users, roles and role assignments.
//
// The Manager owns every account invariant: unique normalized user names, emails and
// role names, security stamp rotation, password hashing and email confirmation.
// Persistence is delegated to a Store. Every mutating operation stages its changes
// on its own UnitOfWork and commits them with Save.
//
// # Results
//
// Expected outcomes (conflicts, missing records, bad tokens) are returned as a Result
// carrying an HTTP like status code and a message. An error is only returned for
// infrastructure faults such as an unreachable store or a cancelled context.
//
// # Staged setters
//
// SetUserName, SetEmail and SetPassword only change the in-memory user. Call Update
// to persist one or more staged changes in a single round trip:
//
//	if res, err := m.SetEmail(ctx, user, "new@example.com"); err != nil || !res.IsSuccess() {
//	    return res, err
//	}
//
//	res, err := m.Update(ctx, user)
//
// # Connection
//
// A Manager acquires its Store lazily through the StoreFactory on first use. The
// factory is invoked at most once successfully per Manager, also under concurrent
// first use. The Store is shared; units of work are not, so concurrent operations
// neither commit nor discard each other's changes.
package directory
