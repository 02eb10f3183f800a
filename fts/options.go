package fts

import "log/slog"

// Option configures file opening behavior.
type Option func(*fileOptions)

type fileOptions struct {
	wantSpectrum      bool
	wantInterferogram bool
	wantTransmittance bool
	wantPhase         bool
	logger            *slog.Logger
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{}
}

// WithSpectrum pre-decodes the spectrum data block at open time. When the
// single-channel spectrum block is absent, the sample-channel block (ScSm)
// is substituted and the substitution logged.
func WithSpectrum() Option {
	return func(o *fileOptions) { o.wantSpectrum = true }
}

// WithInterferogram pre-decodes the interferogram data block at open time.
func WithInterferogram() Option {
	return func(o *fileOptions) { o.wantInterferogram = true }
}

// WithTransmittance pre-decodes the transmittance data block at open time.
func WithTransmittance() Option {
	return func(o *fileOptions) { o.wantTransmittance = true }
}

// WithPhase pre-decodes the phase data block at open time.
func WithPhase() Option {
	return func(o *fileOptions) { o.wantPhase = true }
}

// WithLogger mirrors the session log to the given structured logger in
// addition to the file's own append-only log.
func WithLogger(l *slog.Logger) Option {
	return func(o *fileOptions) { o.logger = l }
}
