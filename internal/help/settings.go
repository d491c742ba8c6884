package help

// Settings control how help output looks and how it is delivered
type Settings struct {
	Prefix       string
	BulletSymbol string
	BotName      string
	// Locale is a BCP 47 tag used to sort command names
	Locale string
	// Decoration sends the full listing as a caption under a decorative image
	Decoration bool
	// StrictLookup answers an unknown command name with a notice instead of the full listing
	StrictLookup bool
}
