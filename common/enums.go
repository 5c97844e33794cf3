// The only reason this package exists is because enums are shared between
// configuration, the style model and the engine and neither of them should
// depend on the other just to spell a unit.
package common

//go:generate go tool go-enum --names --values --marshal --mustparse --nocase

// Unit appended to numeric values of size related properties.
// ENUM(rem, px)
type SizeUnit int

// Unit appended to numeric values of time related properties.
// ENUM(ms, s)
type TimeUnit int

// How class names are derived from declarations. Debug produces readable
// slugs, production compact base-36 hashes. Never mixed in one engine.
// ENUM(debug, production)
type HashMode int

// Selector relation of a pseudo-selector block, values are in the order
// relations participate in class names.
// ENUM(self, parent, ancestor)
type Relation int
