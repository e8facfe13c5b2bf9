package opts

import (
	"github.com/rishabhskr/fileshuttle/pkg/config"
	"github.com/rishabhskr/fileshuttle/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	ConfigPath string
	UserLogger *log.UserLogger
}
