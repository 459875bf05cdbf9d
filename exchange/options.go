package exchange

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Timeout    time.Duration
	Auth       AuthOptions
	SkipVerify bool
	// ExpectedStatus stops the sprint at the first step answering
	// another status. Zero disables the check.
	ExpectedStatus int

	Transport http.RoundTripper
	Logger    *zerolog.Logger
}

type AuthOptions struct {
	Enabled  bool
	UserName string
	Password string
}

func (o *Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}
