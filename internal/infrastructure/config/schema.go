package config

// Config represents the complete configuration for moto.
type Config struct {
	Window      WindowConfig      `mapstructure:"window" toml:"window" json:"window"`
	Engine      EngineConfig      `mapstructure:"engine" toml:"engine" json:"engine"`
	Permissions PermissionsConfig `mapstructure:"permissions" toml:"permissions" json:"permissions"`
	Appearance  AppearanceConfig  `mapstructure:"appearance" toml:"appearance" json:"appearance"`
	// Shortcuts overrides key chords per action, e.g. new_tab = ["ctrl+t"].
	Shortcuts map[string][]string `mapstructure:"shortcuts" toml:"shortcuts" json:"shortcuts,omitempty"`
	// Homepage is opened when no url is given on the command line.
	Homepage string `mapstructure:"homepage" toml:"homepage" json:"homepage"`
	// SearchEngine is the URL template for location bar searches (must contain %s).
	SearchEngine string         `mapstructure:"search_engine" toml:"search_engine" json:"search_engine"`
	Database     DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging      LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	History      HistoryConfig  `mapstructure:"history" toml:"history" json:"history"`
}

// WindowConfig controls the native window and the frame loop.
type WindowConfig struct {
	Width  int `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height int `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
	// ChromeHeight is the overlay height in logical pixels.
	ChromeHeight int `mapstructure:"chrome_height" toml:"chrome_height" json:"chrome_height" jsonschema:"minimum=0"`
	// FrameIntervalMs is the frame loop period while the window is visible.
	FrameIntervalMs int `mapstructure:"frame_interval_ms" toml:"frame_interval_ms" json:"frame_interval_ms" jsonschema:"minimum=1"`
	// HiddenFrameIntervalMs throttles the loop while the window is hidden.
	HiddenFrameIntervalMs int `mapstructure:"hidden_frame_interval_ms" toml:"hidden_frame_interval_ms" json:"hidden_frame_interval_ms" jsonschema:"minimum=1"`
}

// RestartPolicy decides what happens when the engine is lost.
type RestartPolicy string

const (
	RestartPrompt RestartPolicy = "prompt"
	RestartAlways RestartPolicy = "always"
	RestartNever  RestartPolicy = "never"
)

// EngineConfig controls the embedded engine process.
type EngineConfig struct {
	// Path to the browser executable; empty lets the engine search PATH.
	Path string `mapstructure:"path" toml:"path" json:"path"`
	// RemoteURL attaches to an already running engine instead of spawning one.
	RemoteURL string `mapstructure:"remote_url" toml:"remote_url" json:"remote_url"`
	Headless  bool   `mapstructure:"headless" toml:"headless" json:"headless"`
	// AllowPopups honors window.open and target=_blank requests.
	AllowPopups   bool          `mapstructure:"allow_popups" toml:"allow_popups" json:"allow_popups"`
	RestartPolicy RestartPolicy `mapstructure:"restart_policy" toml:"restart_policy" json:"restart_policy" jsonschema:"enum=prompt,enum=always,enum=never"`
	// Flags are extra command-line switches passed to the engine.
	Flags []string `mapstructure:"flags" toml:"flags" json:"flags,omitempty"`
	// DispatchTimeoutMs bounds a single command dispatch.
	DispatchTimeoutMs int `mapstructure:"dispatch_timeout_ms" toml:"dispatch_timeout_ms" json:"dispatch_timeout_ms" jsonschema:"minimum=1"`
}

// PermissionsConfig answers page permission requests without prompting.
type PermissionsConfig struct {
	Default string `mapstructure:"default" toml:"default" json:"default" jsonschema:"enum=allow,enum=deny"`
	// Overrides maps a permission kind (geolocation, notifications, ...) to allow or deny.
	Overrides map[string]string `mapstructure:"overrides" toml:"overrides" json:"overrides,omitempty"`
}

// Color scheme values.
const (
	ThemePreferDark  = "prefer-dark"
	ThemePreferLight = "prefer-light"
	ThemeDefault     = "default"
)

// AppearanceConfig holds the overlay colors.
type AppearanceConfig struct {
	// ColorScheme is prefer-dark, prefer-light or default (follow the desktop).
	ColorScheme  string       `mapstructure:"color_scheme" toml:"color_scheme" json:"color_scheme" jsonschema:"enum=prefer-dark,enum=prefer-light,enum=default"`
	LightPalette ColorPalette `mapstructure:"light_palette" toml:"light_palette" json:"light_palette"`
	DarkPalette  ColorPalette `mapstructure:"dark_palette" toml:"dark_palette" json:"dark_palette"`
}

// ColorPalette holds hex colors; empty fields keep the built-in value.
type ColorPalette struct {
	Background     string `mapstructure:"background" toml:"background" json:"background,omitempty"`
	Surface        string `mapstructure:"surface" toml:"surface" json:"surface,omitempty"`
	SurfaceVariant string `mapstructure:"surface_variant" toml:"surface_variant" json:"surface_variant,omitempty"`
	Text           string `mapstructure:"text" toml:"text" json:"text,omitempty"`
	Muted          string `mapstructure:"muted" toml:"muted" json:"muted,omitempty"`
	Accent         string `mapstructure:"accent" toml:"accent" json:"accent,omitempty"`
	Border         string `mapstructure:"border" toml:"border" json:"border,omitempty"`
}

// DatabaseConfig locates the bookmarks and history database.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/moto/moto.sqlite.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format        string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
}

// HistoryConfig bounds browsing history.
type HistoryConfig struct {
	// MaxEntries keeps the most recent visits; 0 keeps everything.
	MaxEntries int `mapstructure:"max_entries" toml:"max_entries" json:"max_entries" jsonschema:"minimum=0"`
}
