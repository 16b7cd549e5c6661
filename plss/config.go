package plss

import "strings"

// Config carries the parser settings that are understood by the
// reference parser. It is built from an opaque comma-separated config
// string; tokens meant for richer parser implementations are ignored
// rather than rejected, so configs can be passed through verbatim.
type Config struct {
	// DefaultNS is assumed when a township carries no direction.
	DefaultNS byte
	// DefaultEW is assumed when a range carries no direction.
	DefaultEW byte
	// CleanQQ treats the whole input as lot/aliquot text even when no
	// township/range/section context is present.
	CleanQQ bool
}

func DefaultConfig() Config {
	return Config{DefaultNS: 'n', DefaultEW: 'w'}
}

// ParseConfig parses a config string such as "n,w" or "s,e,clean_qq".
func ParseConfig(s string) Config {
	cfg := DefaultConfig()
	for _, tok := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "n":
			cfg.DefaultNS = 'n'
		case "s":
			cfg.DefaultNS = 's'
		case "e":
			cfg.DefaultEW = 'e'
		case "w":
			cfg.DefaultEW = 'w'
		case "clean_qq":
			cfg.CleanQQ = true
		}
	}
	return cfg
}
