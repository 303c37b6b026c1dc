// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains text extraction, AI question generation, file storage,
// auth primitives (tokens, password hashing), background job
// processing (using Redis/Asynq), and email client integrations
// (like Resend).
package lib
