// Package domid allocates DOM element identifiers that are unique across the
// whole running program.
//
// An allocation site is declared once, usually as a package-level variable or
// at the top of a component constructor, and every instantiation draws a fresh
// identifier from it:
//
//	var menuSite = domid.MustSite("nav.menu", domid.WithName("menu"))
//
//	func Menu() view.Node {
//		id := menuSite.New() // "menu--1", "menu--2", ...
//		return view.El("ul", view.ID(id))
//	}
//
// Sites can also be keyed by their source location with Here, which is the
// closest Go gets to a macro call site:
//
//	id := domid.Here(domid.WithName("searchBox"), domid.WithKebabCase()).New()
//
// # Payload
//
// An identifier renders as <prefix>--<token>. The prefix is the optional
// human-readable name segment (or "domid" when absent); the token comes from
// the active Source and is the only part that carries uniqueness. Tokens never
// contain "--" and never start with '-', so the token is always the text after
// the last "--" and two identifiers with different tokens can never be equal,
// whatever their names.
//
// # Sources
//
// The default Source is a process-wide atomic counter rendered in base 36.
// It is initialised before main runs and is never reset. A host framework that
// renders on the server and hydrates on the client can install its own shared
// source with SetSource before the first identifier is drawn; UUIDSource and
// ULIDSource are provided for callers that prefer opaque tokens.
//
// # Build tags
//
//	domid_noattr  drops ID.AttributeValue (the attribute-binding adapter)
//	domid_nocase  drops WithKebabCase / WithPascalCase and the domidKebab template func
//
// Requesting an adapter that was compiled out is a compile error.
package domid
