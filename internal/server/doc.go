// Package server implements the MCP (Model Context Protocol) server for
// dimension measurement tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the measurement
// pipeline and its individual stages through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_clear_cache: Evict one image or clear the cache
//
// Pipeline Stages:
//   - image_edge_detect: Binary edge map of the preprocessor
//   - image_find_contours: Traced contours with pixel geometry
//   - image_calibrate_scale: Scaling factor from the largest contour
//
// Measurement:
//   - image_measure_dimensions: Full pipeline, writes annotated image and CSV
//
// # Image Caching
//
// The inspection tools (load, dimensions, edges, contours, calibration)
// share an in-memory cache keyed by path. image_measure_dimensions always
// reads the file afresh so every measurement run is independent.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "file not found at /x.png"
//
// # Usage
//
//	cfg, err := config.Load()
//	...
//	srv, err := server.New(cfg, logging.New(cfg.LogLevel, nil))
//	...
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
