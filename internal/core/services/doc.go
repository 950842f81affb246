// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The deduplication engine lives here: MergeQuestions reconciles two
// same-description records and DedupeService folds whole archives.
package services
