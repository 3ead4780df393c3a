// Package vfsclient implements the adapter to the remote virtual file
// system: read, info, download, list, createFile, uploadFile, and delete,
// each authenticated with a single bearer token supplied at construction.
//
// Every operation reports failure through its returned error value, with a
// non-success HTTP status carried in that error (Info instead reports a
// non-200 status as false); none raise asynchronously, matching the engine's policy of
// surfacing failures as data rather than panics (spec §4.1, §7).
package vfsclient
