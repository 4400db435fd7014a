package config

// Config is the top-level assetctl configuration.
type Config struct {
	Library LibraryConfig `mapstructure:"library" yaml:"library"`
}

// LibraryConfig holds the on-disk locations of the asset store.
type LibraryConfig struct {
	// RootDir holds metadata.json, Assets/ and FolderIcon/.
	RootDir string `mapstructure:"root_dir" yaml:"root_dir"`
	// CacheDir holds the derived assetManager_cache.json.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
	// ScanWorkers bounds the parallelism of disk rescans and verification.
	ScanWorkers int `mapstructure:"scan_workers" yaml:"scan_workers"`
}
