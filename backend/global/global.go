package global

import (
	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. The zero value discards
// everything until initialize.InitLogger runs.
var Logger zerolog.Logger = zerolog.Nop()
