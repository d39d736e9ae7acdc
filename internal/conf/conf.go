// Package conf defines the typed bootstrap configuration scanned from configs/.
package conf

import (
	"encoding/json"
	"fmt"
	"time"
)

// GreetingAddr is the only address the greeting listener ever binds.
const GreetingAddr = "127.0.0.1:3000"

// Bootstrap is the root of the configuration tree.
type Bootstrap struct {
	Server        *Server        `json:"server"`
	Observability *Observability `json:"observability"`
}

// Server groups listener settings.
type Server struct {
	HTTP  *Server_HTTP  `json:"http"`
	Admin *Server_Admin `json:"admin"`
}

// Server_HTTP configures the greeting listener. Network and Addr are never
// read from config sources; the loader pins them.
type Server_HTTP struct {
	Network string   `json:"-"`
	Addr    string   `json:"-"`
	Timeout Duration `json:"timeout"`
}

// Server_Admin configures the optional metrics/health listener.
// An empty Addr disables it.
type Server_Admin struct {
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Observability groups telemetry toggles.
type Observability struct {
	Metrics *Observability_Metrics `json:"metrics"`
}

// Observability_Metrics toggles the request metrics middleware.
type Observability_Metrics struct {
	Enabled *bool `json:"enabled"`
}

// GetHTTP returns the greeting listener section, nil-safe.
func (s *Server) GetHTTP() *Server_HTTP {
	if s == nil {
		return nil
	}
	return s.HTTP
}

// GetAdmin returns the admin listener section, nil-safe.
func (s *Server) GetAdmin() *Server_Admin {
	if s == nil {
		return nil
	}
	return s.Admin
}

// GetMetrics returns the metrics section, nil-safe.
func (o *Observability) GetMetrics() *Observability_Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}

// IsEnabled reports whether request metrics are recorded. Defaults to true.
func (m *Observability_Metrics) IsEnabled() bool {
	if m == nil || m.Enabled == nil {
		return true
	}
	return *m.Enabled
}

// Duration accepts "1.5s" style strings or integer nanoseconds.
type Duration time.Duration

// AsDuration returns the value as time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		if value == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
