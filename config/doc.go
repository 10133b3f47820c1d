// Package config loads named capture profiles from an hcl file.
//
// A profiles file (logic.hcl) collects the capture settings for a project so
// a single --profile flag configures trigger, rates, channels and sample
// count in one shot:
//
//  profile "uart" {
//    digital_sample_rate = 16000000
//    samples             = 10000000
//    digital_channels    = [0, 1]
//    trigger             = ["negedge", "", "", "", "", "", "", ""]
//  }
//
//  profile "servo" {
//    digital_sample_rate = 4000000
//    analog_sample_rate  = 125000
//    digital_channels    = [2]
//    analog_channels     = [0]
//    performance         = 50
//  }
//
// The file is searched for in the given directory and its parents, so
// profiles behave like project configuration.
package config
