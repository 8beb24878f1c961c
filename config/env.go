package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix namespaces environment overrides
const EnvPrefix = "RAYCAST_"

// ApplyEnv overrides selected settings from RAYCAST_* variables, re-validating the result
// lookup is os.LookupEnv when nil
//
//	RAYCAST_ADDR, RAYCAST_ORIGINS (comma separated), RAYCAST_MAX_SESSIONS,
//	RAYCAST_MAP, RAYCAST_RESOLUTION, RAYCAST_FOV, RAYCAST_FRAME_RATE, RAYCAST_SEED,
//	RAYCAST_MAZE (WIDTHxHEIGHT)
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("ADDR"); ok {
		c.Serve.Addr = v
	}
	if v, ok := get("ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Serve.AllowedOrigins = origins
	}
	if v, ok := get("MAP"); ok {
		c.Map.File = v
	}
	if err := envInt(get, "MAX_SESSIONS", &c.Serve.MaxSessions); err != nil {
		return err
	}
	if err := envInt(get, "RESOLUTION", &c.Screen.Resolution); err != nil {
		return err
	}
	if err := envInt(get, "FRAME_RATE", &c.Screen.FrameRate); err != nil {
		return err
	}
	if v, ok := get("FOV"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sFOV=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Camera.FOV = f
	}
	if v, ok := get("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Map.Maze.Seed = seed
	}
	if v, ok := get("MAZE"); ok {
		w, h, found := strings.Cut(strings.ToLower(v), "x")
		mw, errW := strconv.Atoi(w)
		mh, errH := strconv.Atoi(h)
		if !found || errW != nil || errH != nil {
			return fmt.Errorf("%w: %sMAZE=%q, want WIDTHxHEIGHT", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Map.Maze.Width, c.Map.Maze.Height = mw, mh
	}
	return c.Validate()
}

func envInt(get func(string) (string, bool), name string, dst *int) error {
	v, ok := get(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, name, v)
	}
	*dst = n
	return nil
}
