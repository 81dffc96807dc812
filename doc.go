// Package autobuild provides builders that produce a record automatically, the
// moment the last planned field is supplied, and never before.
//
//   - A Schema lists the fields of a target record and which are required
//     (Declare derives it from a struct, dsl and schemafile declare it by hand).
//   - Schema.Plan picks the keys a builder tracks; a plan that misses a
//     required field is rejected with ErrIncompletePlan naming every missing key.
//   - Builder.With supplies one key and returns either the next Builder or,
//     on the call that completes the plan, the finalized Record.
//
// Builders are immutable values. Completion is decided by key presence, so
// nil, zero values and Absent all count as supplied.
//
// Design policy:
//   - Keep only public APIs in the root package.
//   - Place the schema DSL under dsl/, YAML schema loading under schemafile/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := autobuild.MustDeclare[User]()
//	b, err := s.Plan("id", "username")
//	out, err := b.Apply(idKey.Set(101), nameKey.Set("admin"))
//	rec, ok := autobuild.Finalized(out)
//	user, err := rec.Value()
package autobuild
