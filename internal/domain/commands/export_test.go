//go:build unit

package commands

// BuildGrepArgs exports buildGrepArgs for testing.
var BuildGrepArgs = buildGrepArgs //nolint:gochecknoglobals // test export

// FormatGrepOutput exports formatGrepOutput for testing.
var FormatGrepOutput = formatGrepOutput //nolint:gochecknoglobals // test export

// SuggestGroups exports suggestGroups for testing.
var SuggestGroups = suggestGroups //nolint:gochecknoglobals // test export
