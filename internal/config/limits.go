package config

const (
	// MaxPathNameLength is the maximum length of a folder, page or asset name.
	// Limited to 255 to fit in the file_name column and keep paths readable.
	MaxPathNameLength = 255

	// MaxTitleLength is the maximum length of a node title.
	MaxTitleLength = 255

	// MaxFolderPathLength is the maximum length of a stored folder path.
	// Deeper hierarchies than this are an anti-pattern for a wiki.
	MaxFolderPathLength = 2000
)
