package opts

import (
	"github.com/hnorjordet/xliff-regex-tool/cmd/xliffqa/feedback"
	"github.com/hnorjordet/xliff-regex-tool/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	UserLogger *feedback.UserLogger
}
