package types

type (
	// CopyResult summarizes a full copy.
	CopyResult struct {
		Files int `json:"files"`
		Dirs  int `json:"dirs"`
	}

	// ShellResult lists the subdirectory names handled by an empty-shell
	// deployment.
	ShellResult struct {
		Created []string `json:"created"`
		Skipped []string `json:"skipped"`
	}

	// IgnoreConfig contains extra ignore patterns for subdirectory listing.
	IgnoreConfig struct {
		IgnoredPatterns []string `json:"ignoredPatterns" yaml:"ignore"`
	}
)
