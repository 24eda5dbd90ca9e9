package gnc

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when a mode string is not recognised.
var ErrUnknownMode = errors.New("gnc: unknown mode")

// FaultMode selects how a fault channel treats the data passing through it.
type FaultMode string

const (
	FaultClean   FaultMode = "clean"
	FaultCorrupt FaultMode = "corrupt"
)

// EnvMode selects the environment the run flies through.
type EnvMode string

const (
	EnvNormal         EnvMode = "normal"
	EnvHighWind       EnvMode = "high_wind"
	EnvGravityAnomaly EnvMode = "gravity_anomaly"
)

// NavMode selects whether navigation has a position fix.
type NavMode string

const (
	NavNominal  NavMode = "nominal"
	NavDegraded NavMode = "degraded"
)

func (m FaultMode) Validate() error {
	switch m {
	case FaultClean, FaultCorrupt:
		return nil
	}
	return fmt.Errorf("%w: fault mode %q", ErrUnknownMode, string(m))
}

func (m EnvMode) Validate() error {
	switch m {
	case EnvNormal, EnvHighWind, EnvGravityAnomaly:
		return nil
	}
	return fmt.Errorf("%w: environment mode %q", ErrUnknownMode, string(m))
}

func (m NavMode) Validate() error {
	switch m {
	case NavNominal, NavDegraded:
		return nil
	}
	return fmt.Errorf("%w: navigation mode %q", ErrUnknownMode, string(m))
}
