// Package quran provides the domain model for Quran content (surahs,
// ayahs, translations), a client for the remote content API, edition
// resolution for the supported display languages, and the multi-edition
// search aggregator with its pagination helpers.
package quran
