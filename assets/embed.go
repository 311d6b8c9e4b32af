package assets

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed quotes/*.json
var quotesFS embed.FS

// Quotes returns the embedded quote corpus for the given category.
// Each corpus ships as quotes/<category>.json, a flat JSON array of strings.
func Quotes(category string) ([]string, error) {
	data, err := fs.ReadFile(quotesFS, "quotes/"+category+".json")
	if err != nil {
		return nil, fmt.Errorf("no embedded corpus for category %q: %w", category, err)
	}

	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("corpus %q: %w", category, err)
	}
	return texts, nil
}
