// Package domain provides domain models used across the application.
package domain

// Source identifies the storefront a record was scraped from.
type Source string

const (
	// SourceSteam identifies records scraped from the Steam storefront.
	SourceSteam Source = "Steam"
	// SourceGOG identifies records scraped from GOG.
	SourceGOG Source = "GOG"
	// SourceInstantGaming identifies records scraped from Instant Gaming.
	SourceInstantGaming Source = "instant_gaming"
	// SourceRAWG identifies records scraped from RAWG.
	SourceRAWG Source = "RAWG"
	// SourceMetacritic identifies records scraped from Metacritic.
	SourceMetacritic Source = "Metacritic"
	// SourceHumble identifies records scraped from Humble Bundle.
	SourceHumble Source = "Humble"
	// SourceEpic identifies records scraped from the Epic Games Store.
	SourceEpic Source = "Epic"
)

// validSources maps every recognised Source value to true for O(1) lookup.
var validSources = map[Source]bool{
	SourceSteam:         true,
	SourceGOG:           true,
	SourceInstantGaming: true,
	SourceRAWG:          true,
	SourceMetacritic:    true,
	SourceHumble:        true,
	SourceEpic:          true,
}

// sourceCount is the number of valid sources (used for pre-allocation).
const sourceCount = 7

// AllSources returns all valid sources in their canonical merge order.
func AllSources() []Source {
	sources := make([]Source, 0, sourceCount)
	sources = append(sources,
		SourceSteam, SourceGOG, SourceInstantGaming, SourceRAWG,
		SourceMetacritic, SourceHumble, SourceEpic,
	)
	return sources
}

// IsValid reports whether s is a recognised source.
func (s Source) IsValid() bool {
	return validSources[s]
}
