package vanilla

import theme "github.com/goliatone/go-theme"

// DefaultThemeName is the theme shipped with the embedded stylesheet.
const DefaultThemeName = "bloom"

// DefaultTheme returns the manifest for the bundled look. The dark variant
// only swaps tokens; both variants share the embedded assets.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#d9480f",
			"surface": "#ffffff",
			"text":    "#212529",
			"muted":   "#868e96",
			"danger":  "#c92a2a",
			"success": "#2b8a3e",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": StylesheetName,
				"script":     RuntimeScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#1f1f1f",
					"text":    "#f1f3f5",
					"muted":   "#495057",
				},
			},
		},
	}
}
