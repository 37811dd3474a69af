package global

import "github.com/rs/zerolog"

var Logger zerolog.Logger
