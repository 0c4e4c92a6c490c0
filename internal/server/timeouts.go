package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// defaultShutdownTimeout applies when the config leaves ShutdownTimeout unset.
var defaultShutdownTimeout = 10 * time.Second
