// Package dsl declares autobuild schemas by hand, for targets that are not
// structs (maps) or when the struct tags are not the right source of truth.
//
// Entry points
//   - Object[T](name): create a schema builder; chain Field(...).Required()/Optional(),
//     Require(names...), Options(opt) and finish with Build()/MustBuild().
//   - Field types: String/Bool/Int/Int64/Float/Number/Map/Slice/Any, TypeOf[V]() for
//     anything else, Nullable(ft) to accept nil.
//
// Example
//
//	s := dsl.Object[map[string]any]("User").
//	    Field("id", dsl.Int()).Required().
//	    Field("username", dsl.String()).Required().
//	    Field("bio", dsl.String()).
//	    MustBuild()
//
//	b := s.MustPlan("id", "username")
package dsl
