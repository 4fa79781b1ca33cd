package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowOrigins []string `yaml:"allowOrigins" validate:"dive,required"`
}

// DatasetConfig points at the bus line dataset loaded at startup
type DatasetConfig struct {
	Path       string `yaml:"path" validate:"required"`
	Format     string `yaml:"format" validate:"omitempty,oneof=json stops gob gtfs dart"`
	SplitLoops bool   `yaml:"splitLoops"`
}

// RoutingConfig mirrors routing.Options plus the per-request time limit
type RoutingConfig struct {
	ClusterToleranceM   float64 `yaml:"clusterToleranceM" validate:"gte=0"`
	PortalRadiusM       float64 `yaml:"portalRadiusM" validate:"gte=0"`
	PortalCandidates    int     `yaml:"portalCandidates" validate:"gte=0"`
	WalkFactor          float64 `yaml:"walkFactor" validate:"gte=0"`
	BusFactor           float64 `yaml:"busFactor" validate:"gte=0"`
	TransferPenalty     float64 `yaml:"transferPenalty" validate:"gte=0"`
	BacktrackMultiplier float64 `yaml:"backtrackMultiplier" validate:"gte=0"`
	CurveBase           float64 `yaml:"curveBase" validate:"gte=1"`
	MaxExplored         int     `yaml:"maxExplored" validate:"gt=0"`
	SearchTimeoutMS     int     `yaml:"searchTimeoutMS" validate:"gt=0"`
	StateKeyedSearch    bool    `yaml:"stateKeyedSearch"`
	TrimWalkM           float64 `yaml:"trimWalkM" validate:"gte=0"`
}

// CacheConfig sizes the route result cache. Size 0 disables it.
type CacheConfig struct {
	Size       int `yaml:"size" validate:"gte=0"`
	TTLSeconds int `yaml:"ttlSeconds" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Routing RoutingConfig `yaml:"routing"`
	Cache   CacheConfig   `yaml:"cache"`
}
