package config

// DatasetConfig points at the dataset dump and its optional parsed cache.
type DatasetConfig struct {
	Path      string `yaml:"path"`
	CachePath string `yaml:"cachePath"`
}

// ProjectionConfig tunes the event projection. The speed bounds are
// pointers so an explicit 0 can disable a check while absence picks the
// default.
type ProjectionConfig struct {
	DwellSeconds   int            `yaml:"dwellSeconds" validate:"gte=0"`
	DwellByBusType map[string]int `yaml:"dwellByBusType"`
	MinAvgSpeedMS  *float64       `yaml:"minAvgSpeedMS"`
	MaxAvgSpeedMS  *float64       `yaml:"maxAvgSpeedMS"`
	RouteLimit     int            `yaml:"routeLimit" validate:"gte=0"`
}

// ExportConfig controls the bulk export output.
type ExportConfig struct {
	Output      string `yaml:"output"`
	Format      string `yaml:"format" validate:"omitempty,oneof=csv json siri sirixml gtfsrt"`
	Codespace   string `yaml:"codespace"`
	ServiceDate string `yaml:"serviceDate" validate:"omitempty,datetime=2006-01-02"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// StoreConfig enables the optional database sinks. Empty values leave a
// sink disabled.
type StoreConfig struct {
	SQLitePath  string `yaml:"sqlitePath"`
	PostgresDSN string `yaml:"postgresDSN"`
}

// PublishConfig enables the optional NATS publisher.
type PublishConfig struct {
	NATSURL string `yaml:"natsURL"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Dataset    DatasetConfig    `yaml:"dataset"`
	Projection ProjectionConfig `yaml:"projection"`
	Export     ExportConfig     `yaml:"export"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Publish    PublishConfig    `yaml:"publish"`
}
