// Package errors provides structured, machine-readable error handling for the engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Observation errors
	CodeObservationMalformedIdentity Code = "OBSERVATION_MALFORMED_IDENTITY"
	CodeObservationEmptySide         Code = "OBSERVATION_EMPTY_SIDE"

	// Dex errors
	CodeDexSpeciesNotFound Code = "DEX_SPECIES_NOT_FOUND"
	CodeDexMoveNotFound    Code = "DEX_MOVE_NOT_FOUND"

	// Format errors
	CodeFormatEmpty             Code = "FORMAT_EMPTY"
	CodeFormatInvalidGeneration Code = "FORMAT_INVALID_GENERATION"

	// Entity errors
	CodeEntityInvalidLevel   Code = "ENTITY_INVALID_LEVEL"
	CodeEntityInvalidBoost   Code = "ENTITY_INVALID_BOOST"
	CodeEntityEVBudgetExceed Code = "ENTITY_EV_BUDGET_EXCEEDED"
	CodeEntityInvalidIV      Code = "ENTITY_INVALID_IV"

	// Spread inference errors
	CodeSpreadInferenceFailed Code = "SPREAD_INFERENCE_FAILED"
	CodeSpreadMissingStats    Code = "SPREAD_MISSING_STATS"

	// Preset errors
	CodePresetMismatch      Code = "PRESET_MISMATCH"
	CodePresetEmptyName     Code = "PRESET_EMPTY_NAME"
	CodePresetFormatUnknown Code = "PRESET_FORMAT_UNKNOWN"

	// Storage errors
	CodeNotFound            Code = "NOT_FOUND"
	CodeStorageUnconfigured Code = "STORAGE_UNCONFIGURED"

	// Session errors
	CodeSessionClosed Code = "SESSION_CLOSED"
)
