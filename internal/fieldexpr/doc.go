// Package fieldexpr parses field expressions such as `reader[0].dmLevel`
// into an ordered list of parts.
//
// A field expression addresses a possibly nested field of a component
// instance. Each maximal run of letters, digits and underscores is a field
// name part, and each bracketed identifier is an index part. Dots separate
// parts and carry no meaning of their own, so `a.b` and `a..b` both yield
// the parts `a` and `b`. Any other character makes the whole expression
// invalid.
//
// Index parts are positional only. Array elements share the type of the
// field that contains them, so the resolver skips indexes when it walks
// the type hierarchy.
package fieldexpr
