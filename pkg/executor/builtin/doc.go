// Package builtin implements the built-in node executors the engine ships
// with, one file per node kind (spec §2, §4.6): http, vfs_load, vfs_save,
// vfs_directory_list, for_each, timer, delay, text, json_extract, string,
// math, array, random, node_reference, condition, logical_gate, llm_chat,
// repeater, and an unknown fallback.
//
// Every executor is a small value type implementing executor.NodeExecutor;
// Register wires all of them into a fresh executor.Registry.
package builtin
