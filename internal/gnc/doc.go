// Package gnc provides the stub stages of a guidance-navigation-control loop.
//
// Every stage is a placeholder that only establishes the interface shape of
// the pipeline:
//
//   - [SensorSuite]: noisy position/velocity/attitude readings around the origin
//   - [NavigationSystem]: passthrough estimate, optionally with position lost
//   - [GuidanceSystem]: constant guidance targets
//   - [ControlSystem]: constant actuator commands
//   - [ActuatorSuite]: sink for actuator commands
//   - [EnvironmentalModel]: wind and gravity samples per environment mode
//   - [FaultInjector]: corrupts readings or commands per fault mode
//
// No stage models real physics, estimation, or control.
//
// # Randomness
//
// Randomised stages draw from a single [Noise] owned by the caller. Sharing
// one Noise between the stages of a run, and seeding it once, makes a run
// reproducible.
package gnc
