package config

// GatewayConfig holds the shared gateway opt-in flag.
type GatewayConfig struct {
	// UseGateway carries the raw USE_GPUAI value. It stays a string because
	// the recognized truthy tokens (true/1/yes in any case) are wider than
	// what strconv.ParseBool accepts; parsing happens in the resolver.
	UseGateway string `env:"USE_GPUAI" yaml:"use_gpuai"`
}
