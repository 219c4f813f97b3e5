package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thDraculaTheme(),
		thTokyoNightTheme(),
	} {
		Register(t)
	}
}

// thDefaultTheme returns the dark neutral theme with purple accent.
func thDefaultTheme() Theme {
	return Theme{
		Name:         "default",
		Background:   "#1e1e1e",
		Foreground:   "#d4d4d4",
		Dim:          "#6b6b6b",
		Accent:       "#7C3AED",
		Border:       "#3e3e3e",
		Selected:     "#60b5cc",
		Error:        "#e06c75",
		SliderFilled: "#60b5cc",
		SliderEmpty:  "#3e3e3e",
		HelpKey:      "#7C3AED",
		HelpDesc:     "#6b6b6b",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:         "gruvbox",
		Background:   "#282828",
		Foreground:   "#ebdbb2",
		Dim:          "#928374",
		Accent:       "#fe8019",
		Border:       "#504945",
		Selected:     "#fabd2f",
		Error:        "#fb4934",
		SliderFilled: "#b8bb26",
		SliderEmpty:  "#504945",
		HelpKey:      "#fe8019",
		HelpDesc:     "#928374",
	}
}

// thNordTheme returns the arctic blue Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:         "nord",
		Background:   "#2e3440",
		Foreground:   "#eceff4",
		Dim:          "#4c566a",
		Accent:       "#88c0d0",
		Border:       "#3b4252",
		Selected:     "#ebcb8b",
		Error:        "#bf616a",
		SliderFilled: "#a3be8c",
		SliderEmpty:  "#3b4252",
		HelpKey:      "#88c0d0",
		HelpDesc:     "#4c566a",
	}
}

// thDraculaTheme returns the Dracula theme.
func thDraculaTheme() Theme {
	return Theme{
		Name:         "dracula",
		Background:   "#282a36",
		Foreground:   "#f8f8f2",
		Dim:          "#6272a4",
		Accent:       "#bd93f9",
		Border:       "#44475a",
		Selected:     "#8be9fd",
		Error:        "#ff5555",
		SliderFilled: "#50fa7b",
		SliderEmpty:  "#44475a",
		HelpKey:      "#bd93f9",
		HelpDesc:     "#6272a4",
	}
}

// thTokyoNightTheme returns the Tokyo Night theme.
func thTokyoNightTheme() Theme {
	return Theme{
		Name:         "tokyo-night",
		Background:   "#1a1b26",
		Foreground:   "#c0caf5",
		Dim:          "#565f89",
		Accent:       "#7aa2f7",
		Border:       "#292e42",
		Selected:     "#7dcfff",
		Error:        "#f7768e",
		SliderFilled: "#9ece6a",
		SliderEmpty:  "#292e42",
		HelpKey:      "#7aa2f7",
		HelpDesc:     "#565f89",
	}
}
