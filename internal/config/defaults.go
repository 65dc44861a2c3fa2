package config

const (
	defaultLibraryDir = "~/media"
	defaultDataDir    = "~/.local/share/curator"
	defaultLogDir     = "~/.local/share/curator/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultDebounceMS = 300
)

func defaultImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff"}
}

func defaultVideoExtensions() []string {
	return []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".webm", ".m4v"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Library: Library{
			ImageExtensions: defaultImageExtensions(),
			VideoExtensions: defaultVideoExtensions(),
		},
		Search: Search{
			DebounceMS: defaultDebounceMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
