// Package dom provides the in-memory document model Squirrel materializes
// nodes into.
//
// A Document owns a body Node. Nodes carry an element name, attributes, a
// class list, data attributes, inline styles, text content and children.
// Events dispatched on a node run its listeners, then bubble through its
// ancestors and finally reach the document.
//
// # Selectors
//
// QuerySelector supports compound selectors built from a tag name, #id,
// .class, [attr] and [attr=value], combined with descendant whitespace and
// separated by commas:
//
//	doc.QuerySelector("#view")
//	doc.QuerySelector("section.panel [data-tag=menu]")
//
// Selectors that cannot be parsed match nothing.
//
// The model is single-threaded, like the browser main thread it stands in
// for. Callers serialize access to one Document.
package dom
